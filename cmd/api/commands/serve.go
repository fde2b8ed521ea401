package commands

import (
	"context"
	"os/signal"
	"syscall"

	"mangastore/internal/config"
	"mangastore/internal/handler"
	"mangastore/internal/infra/audit"
	"mangastore/internal/infra/db"
	infraRepo "mangastore/internal/infra/repository"
	"mangastore/internal/server"
	"mangastore/internal/usecase"
	auth "mangastore/internal/usecase/auth_usecase"
	"mangastore/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, gdb, err := bootstrap()
		if err != nil {
			return err
		}

		if autoMigrate {
			if err := db.Migrate(gdb); err != nil {
				return err
			}
		}

		e := buildServer(cfg, logger, gdb)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		addr := ":" + cfg.Port
		logger.Infof("listening on %s", addr)
		return server.Start(ctx, e, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Run migrations before serving")
}

// Repository（GORM実装）→ Usecase → Handler の順に組み立てる
func buildServer(cfg config.Config, logger *log.Logger, gdb *gorm.DB) *echo.Echo {
	userRepo := infraRepo.NewUserGormRepository(gdb)
	volumeRepo := infraRepo.NewVolumeGormRepository(gdb)
	cartRepo := infraRepo.NewCartGormRepository(gdb)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gdb)
	orderRepo := infraRepo.NewOrderGormRepository(gdb)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gdb)
	auditRepo := infraRepo.NewAuditLogGormRepository(gdb)
	txm := infraRepo.NewTxManagerGorm(gdb)

	//監査ログ：DBは常に、xlsxはパスがあるときだけ
	sinks := []usecase.AuditSink{audit.NewDBSink(auditRepo)}
	if cfg.AuditXLSXPath != "" {
		sinks = append(sinks, audit.NewXLSXSink(cfg.AuditXLSXPath))
	}

	ledger := usecase.NewInventoryLedger(inventoryRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, volumeRepo, ledger, logger)
	orderUC := usecase.NewOrderUsecase(
		txm, orderRepo, orderItemRepo,
		validator.NewOrderValidator(),
		audit.NewMultiSink(sinks...),
		usecase.SystemClock(),
		logger,
	)
	catalogUC := usecase.NewCatalogUsecase(volumeRepo, logger)

	//bcrypt（会員登録：Hash / ログイン：Verify）
	clock := auth.RealClock{}
	registerUC := auth.NewRegisterUserUsecase(userRepo, auth.NewBcryptPasswordHasher(12), auth.UUIDGenerator{}, clock)
	loginUC := auth.NewLoginUsecase(userRepo, auth.NewBcryptPasswordVerifier(), auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL), clock)

	return server.New(cfg, logger, userRepo, server.Handlers{
		Auth:    handler.NewAuthHandler(registerUC, loginUC),
		Catalog: handler.NewCatalogHandler(catalogUC),
		Cart:    handler.NewCartHandler(cartUC),
		Order:   handler.NewOrderHandler(orderUC),
		Health:  handler.NewHealthHandler(func() error { return db.Ping(gdb) }),
	})
}

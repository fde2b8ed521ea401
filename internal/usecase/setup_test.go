package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"mangastore/internal/domain/model"
	"mangastore/internal/infra/db/dbtest"
	infrarepo "mangastore/internal/infra/repository"
	repo "mangastore/internal/repository"
	"mangastore/internal/usecase"
	"mangastore/internal/validator"

	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return fixedNow }

// 書かれた監査レコードを覚えておく
type recordingSink struct {
	mu      sync.Mutex
	recs    []model.OrderAuditRecord
	ctxErrs []error
	err     error
}

func (s *recordingSink) AppendOrder(ctx context.Context, rec model.OrderAuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	s.ctxErrs = append(s.ctxErrs, ctx.Err())
	return s.err
}

// 書き込み時点のctx.Err()
func (s *recordingSink) contextErrors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.ctxErrs...)
}

func (s *recordingSink) records() []model.OrderAuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderAuditRecord(nil), s.recs...)
}

type env struct {
	db      *gorm.DB
	carts   *usecase.CartUsecase
	orders  *usecase.OrderUsecase
	catalog *usecase.CatalogUsecase
	audit   *recordingSink
}

// SQLiteの上に本物のrepoとusecaseを組む
func newEnv(t *testing.T) *env {
	return newEnvWithTx(t, nil)
}

// wrap で TransactionManager を差し替えられる（失敗注入用）
func newEnvWithTx(t *testing.T, wrap func(repo.TransactionManager) repo.TransactionManager) *env {
	t.Helper()

	gdb := dbtest.Open(t)
	logger := usecase.NewDiscardLogger()

	cartRepo := infrarepo.NewCartGormRepository(gdb)
	volumeRepo := infrarepo.NewVolumeGormRepository(gdb)
	ledger := usecase.NewInventoryLedger(infrarepo.NewInventoryGormRepository(gdb))

	var tx repo.TransactionManager = infrarepo.NewTxManagerGorm(gdb)
	if wrap != nil {
		tx = wrap(tx)
	}

	sink := &recordingSink{}
	return &env{
		db:    gdb,
		carts: usecase.NewCartUsecase(cartRepo, cartRepo, volumeRepo, ledger, logger),
		orders: usecase.NewOrderUsecase(
			tx,
			infrarepo.NewOrderGormRepository(gdb),
			infrarepo.NewOrderItemGormRepository(gdb),
			validator.NewOrderValidator(),
			sink,
			fixedClock{},
			logger,
		),
		catalog: usecase.NewCatalogUsecase(volumeRepo, logger),
		audit:   sink,
	}
}

func shipping() usecase.PlaceOrderInput {
	return usecase.PlaceOrderInput{
		ShippingAddress: "1-2-3 Jingumae",
		City:            "Tokyo",
		PhoneNumber:     "+81 90-1234-5678",
	}
}

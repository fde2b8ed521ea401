package commands

import (
	"fmt"
	"os"
	"strings"

	"mangastore/internal/config"
	"mangastore/internal/infra/db"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mangastore",
	Short: "Manga storefront API",
	Long: `Manga storefront backend: catalog, per-user carts and order placement
on PostgreSQL.

Configuration is read from the environment (and .env when present).

Examples:
  mangastore migrate     # create/update tables
  mangastore seed        # insert the sample catalog
  mangastore serve       # start the HTTP API`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// 設定・ロガー・DB をまとめて用意する
func bootstrap() (config.Config, *log.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger := newLogger(cfg)

	gdb, err := db.Connect(cfg, logger)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, logger, gdb, nil
}

func newLogger(cfg config.Config) *log.Logger {
	l := log.New("mangastore")
	l.SetHeader(`{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}"}`)

	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "warn":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	default:
		l.SetLevel(log.INFO)
	}
	return l
}

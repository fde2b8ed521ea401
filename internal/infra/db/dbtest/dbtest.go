// Package dbtest はテスト用のインメモリSQLiteを用意する。
package dbtest

import (
	"fmt"
	"io"
	"testing"

	"mangastore/internal/config"
	"mangastore/internal/infra/db"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open はテストごとに独立したDBを作ってマイグレーションまで済ませる。
// 接続は1本に絞るので、トランザクションは直列に実行される。
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	l := log.New("dbtest")
	l.SetOutput(io.Discard)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), db.Options(config.Config{GoEnv: "test"}, l))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

package repository

import (
	"context"

	"mangastore/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫の現在値
	GetStock(ctx context.Context, volumeID string) (int64, error)

	// 在庫が足りるときだけ減算（1文の条件付きUPDATE）
	DecreaseStockIfEnough(ctx context.Context, volumeID string, qty int64) (bool, error)

	// 注文確定用に行ロックして読む（id順）
	LockForCheckout(ctx context.Context, volumeIDs []string) ([]model.Volume, error)
}

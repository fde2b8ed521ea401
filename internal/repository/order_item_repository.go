package repository

import (
	"context"

	"mangastore/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	// volume → manga まで読み込んだ明細
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}

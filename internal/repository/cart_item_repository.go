package repository

import (
	"context"

	"mangastore/internal/domain/model"
)

type CartItemRepository interface {
	// volume → manga まで読み込んだ明細
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	// 同一の巻はプラス
	UpsertByCartAndVolume(ctx context.Context, cartID string, volumeID string, addQty int64) error
	UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error
	DeleteByID(ctx context.Context, cartItemID string) error
	// 所有者（carts.user_id）が一致するときだけ返す
	FindOwned(ctx context.Context, cartItemID string, userID string) (model.CartItem, error)
	SumQuantityByUserID(ctx context.Context, userID string) (int64, error)
}

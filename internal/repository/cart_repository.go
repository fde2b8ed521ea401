package repository

import (
	"context"

	"mangastore/internal/domain/model"
)

type CartRepository interface {
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// 注文確定用。カート行を FOR UPDATE で取る（同じカートの確定は1本ずつ）
	LockByUserID(ctx context.Context, userID string) (model.Cart, error)
	// updated_at を更新
	Touch(ctx context.Context, cartID string) error
	Clear(ctx context.Context, cartID string) error
}

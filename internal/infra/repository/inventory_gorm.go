package repository

import (
	"context"
	"fmt"

	"mangastore/internal/domain/model"
	repo "mangastore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫の現在値
func (r *InventoryGormRepository) GetStock(ctx context.Context, volumeID string) (int64, error) {
	var v model.Volume
	err := r.db.WithContext(ctx).
		Select("id", "stock").
		Where("id = ?", volumeID).
		First(&v).Error

	if isNotFound(err) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return v.Stock, nil
}

// 在庫が足りるときだけ減らす
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, volumeID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Volume{}).
		Where("id = ? AND stock >= ?", volumeID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, fmt.Errorf("decrease stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// FOR UPDATE で巻の行をロックする。
// デッドロックを避けるため常に id 順で取る。
func (r *InventoryGormRepository) LockForCheckout(ctx context.Context, volumeIDs []string) ([]model.Volume, error) {
	if len(volumeIDs) == 0 {
		return []model.Volume{}, nil
	}

	var vols []model.Volume
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Manga").
		Where("id IN ?", volumeIDs).
		Order("id asc").
		Find(&vols).Error
	if err != nil {
		return nil, fmt.Errorf("lock volumes: %w", err)
	}
	return vols, nil
}

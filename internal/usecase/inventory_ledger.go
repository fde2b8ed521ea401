package usecase

import (
	"context"
	"errors"

	repo "mangastore/internal/repository"
)

// InventoryLedger は巻の在庫の窓口。
// 注文確定時の在庫減算はここだけが行う。
type InventoryLedger struct {
	inventory repo.InventoryRepository
}

func NewInventoryLedger(inventory repo.InventoryRepository) *InventoryLedger {
	return &InventoryLedger{inventory: inventory}
}

// 在庫チェック（副作用なし）。ok=false でも error にはしない。
func (l *InventoryLedger) CheckAvailability(ctx context.Context, volumeID string, qty int64) (bool, int64, error) {
	stock, err := l.inventory.GetStock(ctx, volumeID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, 0, newKindError(ErrVolumeNotFound, "volume not found")
	}
	if err != nil {
		return false, 0, internalError(err)
	}
	return qty <= stock, stock, nil
}

// 在庫減算。足りなければ StockError（その時点の残数つき）。
// 判定と減算は1文の条件付きUPDATEなので、同時に走っても0未満にはならない。
func (l *InventoryLedger) Decrement(ctx context.Context, volumeID string, qty int64) error {
	if qty < 1 {
		return newKindError(ErrValidation, "invalid quantity")
	}

	ok, err := l.inventory.DecreaseStockIfEnough(ctx, volumeID, qty)
	if err != nil {
		return internalError(err)
	}
	if ok {
		return nil
	}

	//負けた側は最新の残数を読んで返す
	stock, err := l.inventory.GetStock(ctx, volumeID)
	if errors.Is(err, repo.ErrNotFound) {
		return newKindError(ErrVolumeNotFound, "volume not found")
	}
	if err != nil {
		return internalError(err)
	}
	return newStockError(volumeID, stock, qty)
}

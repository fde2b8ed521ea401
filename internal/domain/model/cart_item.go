package model

import (
	"time"

	"gorm.io/gorm"
)

// カートの明細
// (cart_id, volume_id) は一意。同じ巻は数量を加算する。
type CartItem struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CartID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_volume" json:"cart_id"`
	VolumeID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_items_cart_volume;index" json:"volume_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Volume Volume `gorm:"foreignKey:VolumeID" json:"volume"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}

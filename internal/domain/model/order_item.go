package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// unit_price は購入時点の値を固定する（後から巻の価格が変わっても不変）
type OrderItem struct {
	ID        string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID   string          `gorm:"type:varchar(36);not null;index" json:"order_id"`
	VolumeID  string          `gorm:"type:varchar(36);not null;index" json:"volume_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`

	Volume Volume `gorm:"foreignKey:VolumeID" json:"volume"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = newID()
	}
	return nil
}

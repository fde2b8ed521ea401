package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 漫画タイトル
type Manga struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null;index" json:"title"`
	Author      string    `gorm:"type:varchar(255);not null" json:"author"`
	Description string    `gorm:"type:text" json:"description"`
	CoverImage  string    `gorm:"type:varchar(512)" json:"cover_image"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (m *Manga) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = newID()
	}
	return nil
}

// 購入単位（巻）。stock は 0 未満にならない。discount は 0〜1。
type Volume struct {
	ID           string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	MangaID      string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_volumes_manga_number" json:"manga_id"`
	VolumeNumber int             `gorm:"not null;uniqueIndex:idx_volumes_manga_number" json:"volume_number"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Discount     decimal.Decimal `gorm:"type:numeric(5,4);not null;default:0;check:chk_volumes_discount,discount >= 0 AND discount <= 1" json:"discount"`
	Stock        int64           `gorm:"not null;default:0;check:chk_volumes_stock,stock >= 0" json:"stock"`
	CoverImage   string          `gorm:"type:varchar(512)" json:"cover_image"`
	IsAvailable  bool            `gorm:"not null" json:"is_available"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Manga Manga `gorm:"foreignKey:MangaID" json:"manga"`
}

func (v *Volume) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = newID()
	}
	return nil
}

// 巻もタイトルも販売中か
func (v Volume) Purchasable() bool {
	return v.IsAvailable && v.Manga.IsAvailable
}

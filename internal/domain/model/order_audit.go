package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文確定の監査レコード（外部の台帳に1明細1行で書く）
type OrderAuditRecord struct {
	OrderID     string
	UserID      string
	UserName    string
	TotalAmount decimal.Decimal
	Status      OrderStatus
	City        string
	PhoneNumber string
	PlacedAt    time.Time
	Items       []OrderAuditItem
}

type OrderAuditItem struct {
	VolumeID     string
	MangaTitle   string
	VolumeNumber int
	Quantity     int64
	UnitPrice    decimal.Decimal
	LineTotal    decimal.Decimal
}

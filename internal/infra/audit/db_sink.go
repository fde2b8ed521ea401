package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mangastore/internal/domain/model"
	repo "mangastore/internal/repository"
)

// DBSink は audit_logs に1件残す（ORDER_PLACED）
type DBSink struct {
	logs repo.AuditLogRepository
	now  func() time.Time
}

func NewDBSink(logs repo.AuditLogRepository) *DBSink {
	return &DBSink{logs: logs, now: time.Now}
}

type orderPayload struct {
	UserName    string        `json:"userName"`
	TotalAmount string        `json:"totalAmount"`
	Status      string        `json:"status"`
	City        string        `json:"city"`
	PhoneNumber string        `json:"phoneNumber"`
	PlacedAt    time.Time     `json:"placedAt"`
	Items       []itemPayload `json:"items"`
}

type itemPayload struct {
	VolumeID     string `json:"volumeId"`
	MangaTitle   string `json:"mangaTitle"`
	VolumeNumber int    `json:"volumeNumber"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	LineTotal    string `json:"lineTotal"`
}

func (s *DBSink) AppendOrder(ctx context.Context, rec model.OrderAuditRecord) error {
	p := orderPayload{
		UserName:    rec.UserName,
		TotalAmount: rec.TotalAmount.StringFixed(2),
		Status:      string(rec.Status),
		City:        rec.City,
		PhoneNumber: rec.PhoneNumber,
		PlacedAt:    rec.PlacedAt,
		Items:       make([]itemPayload, 0, len(rec.Items)),
	}
	for _, it := range rec.Items {
		p.Items = append(p.Items, itemPayload{
			VolumeID:     it.VolumeID,
			MangaTitle:   it.MangaTitle,
			VolumeNumber: it.VolumeNumber,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice.StringFixed(2),
			LineTotal:    it.LineTotal.StringFixed(2),
		})
	}

	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	return s.logs.Create(ctx, model.AuditLog{
		ActorUserID:  rec.UserID,
		Action:       model.AuditActionOrderPlaced,
		ResourceType: model.AuditResourceOrder,
		ResourceID:   rec.OrderID,
		AfterJSON:    string(b),
		CreatedAt:    s.now(),
	})
}

package audit

import (
	"context"

	"mangastore/internal/domain/model"
	"mangastore/internal/usecase"

	"golang.org/x/sync/errgroup"
)

// MultiSink は全部のsinkに並行で書く。
// 1つが失敗しても他は止めない（最初のエラーを返す）
type MultiSink struct {
	sinks []usecase.AuditSink
}

func NewMultiSink(sinks ...usecase.AuditSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) AppendOrder(ctx context.Context, rec model.OrderAuditRecord) error {
	var g errgroup.Group
	for _, s := range m.sinks {
		g.Go(func() error {
			return s.AppendOrder(ctx, rec)
		})
	}
	return g.Wait()
}

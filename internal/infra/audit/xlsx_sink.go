package audit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mangastore/internal/domain/model"

	"github.com/tealeg/xlsx"
)

const (
	SheetName  = "Orders"
	timeLayout = "2006-01-02 15:04:05"
)

// 1行目の見出し
var Header = []string{
	"User Name", "City", "Phone", "Order Status", "Placed At",
	"Manga Title", "Volume Number", "Quantity", "Unit Price", "Item Total", "Order Total",
}

// XLSXSink は注文を1明細1行でワークブックに追記する。
// 読んで足して保存するので、書き込みは1本ずつ。
type XLSXSink struct {
	path string
	mu   sync.Mutex
}

func NewXLSXSink(path string) *XLSXSink {
	return &XLSXSink{path: path}
}

func (s *XLSXSink) AppendOrder(ctx context.Context, rec model.OrderAuditRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.open()
	if err != nil {
		return err
	}

	sheet, ok := file.Sheet[SheetName]
	if !ok {
		sheet, err = file.AddSheet(SheetName)
		if err != nil {
			return fmt.Errorf("add sheet: %w", err)
		}
		header := sheet.AddRow()
		for _, h := range Header {
			header.AddCell().SetValue(h)
		}
	}

	placedAt := rec.PlacedAt.Format(timeLayout)
	for _, it := range rec.Items {
		row := sheet.AddRow()
		row.AddCell().SetValue(rec.UserName)
		row.AddCell().SetValue(rec.City)
		row.AddCell().SetValue(rec.PhoneNumber)
		row.AddCell().SetValue(string(rec.Status))
		row.AddCell().SetValue(placedAt)
		row.AddCell().SetValue(it.MangaTitle)
		row.AddCell().SetValue(it.VolumeNumber)
		row.AddCell().SetValue(it.Quantity)
		row.AddCell().SetValue(it.UnitPrice.Round(2).InexactFloat64())
		row.AddCell().SetValue(it.LineTotal.Round(2).InexactFloat64())
		row.AddCell().SetValue(rec.TotalAmount.Round(2).InexactFloat64())
	}

	if err := file.Save(s.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// 既存があれば開く。無ければ新規（ディレクトリも作る）
func (s *XLSXSink) open() (*xlsx.File, error) {
	if _, err := os.Stat(s.path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat workbook: %w", err)
		}
		if dir := filepath.Dir(s.path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create workbook dir: %w", err)
			}
		}
		return xlsx.NewFile(), nil
	}

	file, err := xlsx.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return file, nil
}

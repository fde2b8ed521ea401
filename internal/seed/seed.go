// Package seed は開発用のサンプルカタログを入れる。
package seed

import (
	"context"
	"errors"
	"fmt"

	"mangastore/internal/domain/model"
	repo "mangastore/internal/repository"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

type volumeSeed struct {
	Number   int
	Price    string
	Discount string
	Stock    int64
}

type mangaSeed struct {
	Title       string
	Author      string
	Description string
	Volumes     []volumeSeed
}

var catalog = []mangaSeed{
	{
		Title:       "Blade of the Northern Sea",
		Author:      "Aoi Hoshino",
		Description: "A young navigator and a cursed sword cross a frozen ocean.",
		Volumes: []volumeSeed{
			{Number: 1, Price: "9.99", Discount: "0", Stock: 40},
			{Number: 2, Price: "9.99", Discount: "0.10", Stock: 25},
			{Number: 3, Price: "10.99", Discount: "0", Stock: 5},
		},
	},
	{
		Title:       "Café Lumière",
		Author:      "Mei Tachibana",
		Description: "Everyday life at a tiny café on a hillside street.",
		Volumes: []volumeSeed{
			{Number: 1, Price: "7.50", Discount: "0.15", Stock: 30},
			{Number: 2, Price: "7.50", Discount: "0", Stock: 0},
		},
	},
	{
		Title:       "Signal Lost",
		Author:      "Ren Kurosawa",
		Description: "A radio operator receives messages from a city that no longer exists.",
		Volumes: []volumeSeed{
			{Number: 1, Price: "12.00", Discount: "0.25", Stock: 12},
		},
	},
}

// Run はタイトル単位で投入する。既にあるタイトルは飛ばす
func Run(ctx context.Context, volumes repo.VolumeRepository, l *log.Logger) (int, error) {
	created := 0

	for _, ms := range catalog {
		_, err := volumes.FindMangaByTitle(ctx, ms.Title)
		if err == nil {
			l.Infof("manga already exists, skipping: %s", ms.Title)
			continue
		}
		if !errors.Is(err, repo.ErrNotFound) {
			return created, fmt.Errorf("find manga %q: %w", ms.Title, err)
		}

		m, err := volumes.CreateManga(ctx, model.Manga{
			Title:       ms.Title,
			Author:      ms.Author,
			Description: ms.Description,
			IsAvailable: true,
		})
		if err != nil {
			return created, fmt.Errorf("create manga %q: %w", ms.Title, err)
		}

		for _, vs := range ms.Volumes {
			_, err := volumes.Create(ctx, model.Volume{
				MangaID:      m.ID,
				VolumeNumber: vs.Number,
				Price:        decimal.RequireFromString(vs.Price),
				Discount:     decimal.RequireFromString(vs.Discount),
				Stock:        vs.Stock,
				IsAvailable:  true,
			})
			if err != nil {
				return created, fmt.Errorf("create volume %q #%d: %w", ms.Title, vs.Number, err)
			}
		}

		created++
		l.Infof("created manga: %s (%d volumes)", m.Title, len(ms.Volumes))
	}

	return created, nil
}

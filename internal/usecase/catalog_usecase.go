package usecase

import (
	"context"
	"errors"
	"strings"

	"mangastore/internal/domain/pricing"
	repo "mangastore/internal/repository"

	"github.com/labstack/gommon/log"
)

// CatalogUsecase は巻の参照（公開）。
type CatalogUsecase struct {
	volumeRepo repo.VolumeRepository
	logger     *log.Logger
}

func NewCatalogUsecase(volumeRepo repo.VolumeRepository, logger *log.Logger) *CatalogUsecase {
	return &CatalogUsecase{volumeRepo: volumeRepo, logger: logger}
}

type MangaDetailView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	IsAvailable bool   `json:"isAvailable"`
}

type VolumeDetailView struct {
	ID           string          `json:"id"`
	VolumeNumber int             `json:"volumeNumber"`
	Price        float64         `json:"price"`
	Discount     float64         `json:"discount"`
	FinalPrice   float64         `json:"finalPrice"`
	Stock        int64           `json:"stock"`
	InStock      bool            `json:"inStock"`
	CoverImage   string          `json:"coverImage"`
	IsAvailable  bool            `json:"isAvailable"`
	Manga        MangaDetailView `json:"manga"`
}

// GET /volumes/:id
func (u *CatalogUsecase) GetVolume(ctx context.Context, id string) (VolumeDetailView, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return VolumeDetailView{}, newKindError(ErrValidation, "invalid volume id")
	}

	v, err := u.volumeRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return VolumeDetailView{}, newKindError(ErrVolumeNotFound, "volume not found")
	}
	if err != nil {
		err = internalError(err)
		logFailure(u.logger, "catalog.volume", err, log.JSON{"volume_id": id})
		return VolumeDetailView{}, err
	}

	return VolumeDetailView{
		ID:           v.ID,
		VolumeNumber: v.VolumeNumber,
		Price:        money(v.Price),
		Discount:     v.Discount.InexactFloat64(),
		FinalPrice:   money(pricing.FinalUnitPrice(v.Price, v.Discount)),
		Stock:        v.Stock,
		InStock:      v.Stock > 0,
		CoverImage:   v.CoverImage,
		IsAvailable:  v.Purchasable(),
		Manga: MangaDetailView{
			ID:          v.Manga.ID,
			Title:       v.Manga.Title,
			Author:      v.Manga.Author,
			Description: v.Manga.Description,
			CoverImage:  v.Manga.CoverImage,
			IsAvailable: v.Manga.IsAvailable,
		},
	}, nil
}

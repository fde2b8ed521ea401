package repository

import (
	"context"
	"errors"

	"mangastore/internal/domain/model"
	repo "mangastore/internal/repository"

	"gorm.io/gorm"
)

type VolumeGormRepository struct {
	db *gorm.DB
}

// DI
func NewVolumeGormRepository(db *gorm.DB) *VolumeGormRepository {
	return &VolumeGormRepository{db: db}
}

// IDで巻を取得（mangaも一緒に）
func (r *VolumeGormRepository) FindByID(ctx context.Context, id string) (model.Volume, error) {
	var v model.Volume
	err := r.db.WithContext(ctx).
		Preload("Manga").
		Where("id = ?", id).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Volume{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Volume{}, err
	}
	return v, nil
}

// タイトル作成
func (r *VolumeGormRepository) CreateManga(ctx context.Context, m model.Manga) (model.Manga, error) {
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return model.Manga{}, translate(err)
	}
	return m, nil
}

// 巻の作成（同じタイトルの同じ巻番号は ErrDuplicate）
func (r *VolumeGormRepository) Create(ctx context.Context, v model.Volume) (model.Volume, error) {
	if err := r.db.WithContext(ctx).Omit("Manga").Create(&v).Error; err != nil {
		return model.Volume{}, translate(err)
	}
	return v, nil
}

// タイトル名で探す（seedの重複防止用）
func (r *VolumeGormRepository) FindMangaByTitle(ctx context.Context, title string) (model.Manga, error) {
	var m model.Manga
	err := r.db.WithContext(ctx).Where("title = ?", title).First(&m).Error
	if err != nil {
		return model.Manga{}, translate(err)
	}
	return m, nil
}

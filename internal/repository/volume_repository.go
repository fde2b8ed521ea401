package repository

import (
	"context"
	"errors"

	"mangastore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一意制約違反（メール重複・巻番号重複など）
var ErrDuplicate = errors.New("duplicate key")

// 巻（Volume）の取得。manga も一緒に読む。
type VolumeRepository interface {
	FindByID(ctx context.Context, id string) (model.Volume, error)

	CreateManga(ctx context.Context, m model.Manga) (model.Manga, error)
	FindMangaByTitle(ctx context.Context, title string) (model.Manga, error)
	Create(ctx context.Context, v model.Volume) (model.Volume, error)
}

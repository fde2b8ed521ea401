package seed

import (
	"context"
	"testing"

	"mangastore/internal/domain/model"
	"mangastore/internal/infra/db/dbtest"
	infraRepo "mangastore/internal/infra/repository"
	"mangastore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_IsIdempotent(t *testing.T) {
	gdb := dbtest.Open(t)
	volumes := infraRepo.NewVolumeGormRepository(gdb)
	l := usecase.NewDiscardLogger()
	ctx := context.Background()

	n, err := Run(ctx, volumes, l)
	require.NoError(t, err)
	assert.Equal(t, len(catalog), n)

	// 2回目は何も作らない
	n, err = Run(ctx, volumes, l)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var mangas, vols int64
	require.NoError(t, gdb.Model(&model.Manga{}).Count(&mangas).Error)
	require.NoError(t, gdb.Model(&model.Volume{}).Count(&vols).Error)
	assert.Equal(t, int64(3), mangas)
	assert.Equal(t, int64(6), vols)
}

package usecase_test

import (
	"context"
	"testing"

	"mangastore/internal/infra/db/dbtest"
	"mangastore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_GetCreatesEmptyCart(t *testing.T) {
	e := newEnv(t)
	u := dbtest.SeedUser(t, e.db, "Reader")

	first, err := e.carts.GetCart(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Empty(t, first.Items)
	assert.Equal(t, usecase.CartSummaryView{}, first.Summary)

	//2回目も同じカート
	second, err := e.carts.GetCart(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCart_AddMergesSameVolume(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := dbtest.SeedUser(t, e.db, "Reader")
	v := dbtest.SeedVolume(t, e.db, dbtest.VolumeSpec{Title: "Blue Period", Price: "10.00", Discount: "0.10", Stock: 5})

	_, err := e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: v.ID, Quantity: 2})
	require.NoError(t, err)
	view, err := e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: v.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, view.Items, 1)
	item := view.Items[0]
	assert.Equal(t, int64(5), item.Quantity)
	assert.Equal(t, 9.0, item.Volume.FinalPrice)
	assert.Equal(t, 45.0, item.Subtotal)
	assert.Equal(t, "Blue Period", item.Volume.Manga.Title)

	assert.Equal(t, int64(5), view.Summary.TotalItems)
	assert.Equal(t, 1, view.Summary.UniqueItems)
	assert.Equal(t, 50.0, view.Summary.Subtotal)
	assert.Equal(t, 5.0, view.Summary.TotalDiscount)
	assert.Equal(t, 45.0, view.Summary.Total)

	//カートは在庫を減らさない
	assert.Equal(t, int64(5), dbtest.Stock(t, e.db, v.ID))

	n, err := e.carts.ItemCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestCart_AddRejects(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := dbtest.SeedUser(t, e.db, "Reader")
	v := dbtest.SeedVolume(t, e.db, dbtest.VolumeSpec{Price: "5.00", Stock: 2})
	off := dbtest.SeedVolume(t, e.db, dbtest.VolumeSpec{Price: "5.00", Stock: 2, Unavailable: true})

	_, err := e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: v.ID, Quantity: 0})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: "no-such-volume", Quantity: 1})
	assert.ErrorIs(t, err, usecase.ErrVolumeNotFound)

	_, err = e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: off.ID, Quantity: 1})
	assert.ErrorIs(t, err, usecase.ErrVolumeUnavailable)

	_, err = e.carts.AddItem(ctx, "", usecase.AddCartInput{VolumeID: v.ID, Quantity: 1})
	assert.ErrorIs(t, err, usecase.ErrUnauthorized)

	//既存数量 + 追加分 で在庫と比べる
	_, err = e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: v.ID, Quantity: 2})
	require.NoError(t, err)
	_, err = e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: v.ID, Quantity: 1})
	require.ErrorIs(t, err, usecase.ErrInsufficientStock)

	se, ok := usecase.AsStockError(err)
	require.True(t, ok)
	assert.Equal(t, int64(2), se.Available)
	assert.Equal(t, int64(3), se.Requested)

	//失敗した追加でカートは変わらない
	n, err := e.carts.ItemCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestCart_UpdateAndRemove(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := dbtest.SeedUser(t, e.db, "Reader")
	other := dbtest.SeedUser(t, e.db, "Other")
	v := dbtest.SeedVolume(t, e.db, dbtest.VolumeSpec{Price: "7.50", Stock: 4})

	view, err := e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: v.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := view.Items[0].ID

	view, err = e.carts.UpdateItem(ctx, u.ID, usecase.UpdateCartItemInput{CartItemID: itemID, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, int64(4), view.Items[0].Quantity)
	assert.Equal(t, 30.0, view.Summary.Total)

	_, err = e.carts.UpdateItem(ctx, u.ID, usecase.UpdateCartItemInput{CartItemID: itemID, Quantity: 5})
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)

	//他人の明細は見えない
	_, err = e.carts.UpdateItem(ctx, other.ID, usecase.UpdateCartItemInput{CartItemID: itemID, Quantity: 1})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	_, err = e.carts.RemoveItem(ctx, other.ID, itemID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	view, err = e.carts.RemoveItem(ctx, u.ID, itemID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)

	_, err = e.carts.RemoveItem(ctx, u.ID, itemID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestCart_Clear(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	u := dbtest.SeedUser(t, e.db, "Reader")
	a := dbtest.SeedVolume(t, e.db, dbtest.VolumeSpec{Price: "3.00", Stock: 9})
	b := dbtest.SeedVolume(t, e.db, dbtest.VolumeSpec{Price: "4.00", Stock: 9})

	//カートが無ければ CartNotFound
	err := e.carts.Clear(ctx, u.ID)
	assert.ErrorIs(t, err, usecase.ErrCartNotFound)

	_, err = e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: a.ID, Quantity: 1})
	require.NoError(t, err)
	before, err := e.carts.AddItem(ctx, u.ID, usecase.AddCartInput{VolumeID: b.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, e.carts.Clear(ctx, u.ID))

	after, err := e.carts.GetCart(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, before.ID, after.ID)
	assert.Empty(t, after.Items)

	n, err := e.carts.ItemCount(ctx, u.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

package dbtest

import (
	"testing"

	"mangastore/internal/domain/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedUser はACTIVEなユーザーを1人作る
func SeedUser(t testing.TB, gdb *gorm.DB, displayName string) model.User {
	t.Helper()

	u := model.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		DisplayName:  displayName,
		Status:       model.UserStatusActive,
	}
	if err := gdb.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

// VolumeSpec は SeedVolume の入力。Price/Discount は文字列で渡す（"9.99" など）
type VolumeSpec struct {
	Title        string
	VolumeNumber int
	Price        string
	Discount     string
	Stock        int64
	Unavailable  bool
}

// SeedVolume はタイトルと巻を1つずつ作る
func SeedVolume(t testing.TB, gdb *gorm.DB, vs VolumeSpec) model.Volume {
	t.Helper()

	if vs.Title == "" {
		vs.Title = "Title " + uuid.NewString()[:8]
	}
	if vs.VolumeNumber == 0 {
		vs.VolumeNumber = 1
	}
	if vs.Discount == "" {
		vs.Discount = "0"
	}

	m := model.Manga{Title: vs.Title, Author: "Author", IsAvailable: true}
	if err := gdb.Create(&m).Error; err != nil {
		t.Fatalf("seed manga: %v", err)
	}

	v := model.Volume{
		MangaID:      m.ID,
		VolumeNumber: vs.VolumeNumber,
		Price:        decimal.RequireFromString(vs.Price),
		Discount:     decimal.RequireFromString(vs.Discount),
		Stock:        vs.Stock,
		IsAvailable:  !vs.Unavailable,
	}
	if err := gdb.Omit("Manga").Create(&v).Error; err != nil {
		t.Fatalf("seed volume: %v", err)
	}
	v.Manga = m
	return v
}

// Stock は巻の現在の在庫を読む
func Stock(t testing.TB, gdb *gorm.DB, volumeID string) int64 {
	t.Helper()

	var v model.Volume
	if err := gdb.Select("stock").Where("id = ?", volumeID).First(&v).Error; err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return v.Stock
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"mangastore/internal/domain/model"
	"mangastore/internal/domain/pricing"
	repo "mangastore/internal/repository"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
)

// CartUsecase は /cart の業務ロジックです。
// 在庫チェックはここでは目安（確定時に注文側で再チェックする）。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	volumeRepo   repo.VolumeRepository
	ledger       *InventoryLedger
	logger       *log.Logger
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	volumeRepo repo.VolumeRepository,
	ledger *InventoryLedger,
	logger *log.Logger,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		volumeRepo:   volumeRepo,
		ledger:       ledger,
		logger:       logger,
	}
}

type MangaSummaryView struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage"`
}

type CartVolumeView struct {
	ID           string           `json:"id"`
	VolumeNumber int              `json:"volumeNumber"`
	Price        float64          `json:"price"`
	Discount     float64          `json:"discount"`
	Stock        int64            `json:"stock"`
	CoverImage   string           `json:"coverImage"`
	IsAvailable  bool             `json:"isAvailable"`
	FinalPrice   float64          `json:"finalPrice"`
	Manga        MangaSummaryView `json:"manga"`
}

type CartItemView struct {
	ID        string         `json:"id"`
	Quantity  int64          `json:"quantity"`
	Subtotal  float64        `json:"subtotal"`
	Volume    CartVolumeView `json:"volume"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type CartSummaryView struct {
	TotalItems    int64   `json:"totalItems"`
	UniqueItems   int     `json:"uniqueItems"`
	Subtotal      float64 `json:"subtotal"`
	TotalDiscount float64 `json:"totalDiscount"`
	Total         float64 `json:"total"`
}

type CartView struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Items     []CartItemView  `json:"items"`
	Summary   CartSummaryView `json:"summary"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type AddCartInput struct {
	VolumeID string
	Quantity int64
}

type UpdateCartItemInput struct {
	CartItemID string
	Quantity   int64
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartView, error) {
	if userID == "" {
		return CartView{}, newKindError(ErrUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartView{}, u.fail("cart.get", internalError(err), userID)
	}

	return u.buildCartView(ctx, cart)
}

// AddItem はカートに追加（同一の巻は数量加算）。
func (u *CartUsecase) AddItem(ctx context.Context, userID string, in AddCartInput) (CartView, error) {
	if userID == "" {
		return CartView{}, newKindError(ErrUnauthorized, "unauthorized")
	}
	volumeID := strings.TrimSpace(in.VolumeID)
	if volumeID == "" {
		return CartView{}, newKindError(ErrValidation, "invalid volumeId")
	}
	if in.Quantity < 1 {
		return CartView{}, newKindError(ErrValidation, "quantity must be at least 1")
	}

	// 巻の存在と販売可否（タイトル側も見る）
	v, err := u.volumeRepo.FindByID(ctx, volumeID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, newKindError(ErrVolumeNotFound, "volume not found")
	}
	if err != nil {
		return CartView{}, u.fail("cart.add", internalError(err), userID)
	}
	if !v.Purchasable() {
		return CartView{}, newKindError(ErrVolumeUnavailable, "volume is not available for purchase")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return CartView{}, u.fail("cart.add", internalError(err), userID)
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, u.fail("cart.add", internalError(err), userID)
	}

	var existingQty int64
	for _, it := range items {
		if it.VolumeID == volumeID {
			existingQty = it.Quantity
			break
		}
	}

	// 追加後の合計数量で在庫と比べる
	newQty := existingQty + in.Quantity
	ok, available, err := u.ledger.CheckAvailability(ctx, volumeID, newQty)
	if err != nil {
		return CartView{}, u.fail("cart.add", err, userID)
	}
	if !ok {
		return CartView{}, newStockError(volumeID, available, newQty)
	}

	if err := u.cartItemRepo.UpsertByCartAndVolume(ctx, cart.ID, volumeID, in.Quantity); err != nil {
		return CartView{}, u.fail("cart.add", internalError(err), userID)
	}
	if err := u.cartRepo.Touch(ctx, cart.ID); err != nil {
		return CartView{}, u.fail("cart.add", internalError(err), userID)
	}

	u.logger.Infof("item added to cart for user %s: volume %s x%d", userID, volumeID, in.Quantity)

	return u.refresh(ctx, userID)
}

// 数量変更（所有チェック＋在庫チェック）。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID string, in UpdateCartItemInput) (CartView, error) {
	if userID == "" {
		return CartView{}, newKindError(ErrUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.CartItemID) == "" {
		return CartView{}, newKindError(ErrValidation, "invalid cartItemId")
	}
	if in.Quantity < 1 {
		return CartView{}, newKindError(ErrValidation, "quantity must be at least 1")
	}

	item, err := u.cartItemRepo.FindOwned(ctx, in.CartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, newKindError(ErrNotFound, "cart item not found")
	}
	if err != nil {
		return CartView{}, u.fail("cart.update", internalError(err), userID)
	}

	ok, available, err := u.ledger.CheckAvailability(ctx, item.VolumeID, in.Quantity)
	if err != nil {
		return CartView{}, u.fail("cart.update", err, userID)
	}
	if !ok {
		return CartView{}, newStockError(item.VolumeID, available, in.Quantity)
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, in.Quantity); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartView{}, newKindError(ErrNotFound, "cart item not found")
		}
		return CartView{}, u.fail("cart.update", internalError(err), userID)
	}
	if err := u.cartRepo.Touch(ctx, item.CartID); err != nil {
		return CartView{}, u.fail("cart.update", internalError(err), userID)
	}

	u.logger.Infof("cart item updated for user %s: item %s quantity changed to %d", userID, item.ID, in.Quantity)

	return u.refresh(ctx, userID)
}

// 明細削除
func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, cartItemID string) (CartView, error) {
	if userID == "" {
		return CartView{}, newKindError(ErrUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(cartItemID) == "" {
		return CartView{}, newKindError(ErrValidation, "invalid cartItemId")
	}

	item, err := u.cartItemRepo.FindOwned(ctx, cartItemID, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartView{}, newKindError(ErrNotFound, "cart item not found")
	}
	if err != nil {
		return CartView{}, u.fail("cart.remove", internalError(err), userID)
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return CartView{}, u.fail("cart.remove", internalError(err), userID)
	}
	if err := u.cartRepo.Touch(ctx, item.CartID); err != nil {
		return CartView{}, u.fail("cart.remove", internalError(err), userID)
	}

	u.logger.Infof("item removed from cart for user %s: item %s", userID, item.ID)

	return u.refresh(ctx, userID)
}

// 明細を全部消す（カート自体は残す）
func (u *CartUsecase) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return newKindError(ErrUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return newKindError(ErrCartNotFound, "cart not found")
	}
	if err != nil {
		return u.fail("cart.clear", internalError(err), userID)
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return u.fail("cart.clear", internalError(err), userID)
	}
	if err := u.cartRepo.Touch(ctx, cart.ID); err != nil {
		return u.fail("cart.clear", internalError(err), userID)
	}

	u.logger.Infof("cart cleared for user %s", userID)
	return nil
}

// 数量の合計。カートが無ければ0。
func (u *CartUsecase) ItemCount(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, newKindError(ErrUnauthorized, "unauthorized")
	}

	n, err := u.cartItemRepo.SumQuantityByUserID(ctx, userID)
	if err != nil {
		return 0, u.fail("cart.count", internalError(err), userID)
	}
	return n, nil
}

func (u *CartUsecase) refresh(ctx context.Context, userID string) (CartView, error) {
	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return CartView{}, u.fail("cart.view", internalError(err), userID)
	}
	return u.buildCartView(ctx, cart)
}

// 明細（volume → manga 込み）を読んでCartViewを作る。
func (u *CartUsecase) buildCartView(ctx context.Context, cart model.Cart) (CartView, error) {
	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartView{}, u.fail("cart.view", internalError(err), cart.UserID)
	}

	views := make([]CartItemView, 0, len(items))
	lines := make([]pricing.Line, 0, len(items))

	for _, it := range items {
		v := it.Volume
		final := pricing.FinalUnitPrice(v.Price, v.Discount)

		views = append(views, CartItemView{
			ID:       it.ID,
			Quantity: it.Quantity,
			Subtotal: money(pricing.LineSubtotal(final, it.Quantity)),
			Volume: CartVolumeView{
				ID:           v.ID,
				VolumeNumber: v.VolumeNumber,
				Price:        money(v.Price),
				Discount:     v.Discount.InexactFloat64(),
				Stock:        v.Stock,
				CoverImage:   v.CoverImage,
				IsAvailable:  v.IsAvailable,
				FinalPrice:   money(final),
				Manga:        toMangaSummary(v.Manga),
			},
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		})

		lines = append(lines, pricing.Line{Price: v.Price, Discount: v.Discount, Quantity: it.Quantity})
	}

	s := pricing.Summarize(lines)

	return CartView{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  views,
		Summary: CartSummaryView{
			TotalItems:    s.TotalItems,
			UniqueItems:   s.UniqueItems,
			Subtotal:      money(s.Subtotal),
			TotalDiscount: money(s.TotalDiscount),
			Total:         money(s.Total),
		},
		CreatedAt: cart.CreatedAt,
		UpdatedAt: cart.UpdatedAt,
	}, nil
}

func (u *CartUsecase) fail(op string, err error, userID string) error {
	logFailure(u.logger, op, err, log.JSON{"user_id": userID})
	return err
}

func toMangaSummary(m model.Manga) MangaSummaryView {
	return MangaSummaryView{
		ID:         m.ID,
		Title:      m.Title,
		Author:     m.Author,
		CoverImage: m.CoverImage,
	}
}

// レスポンス用（小数2桁）
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

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
)

// 注文確定後に外部の台帳へ書く約束（失敗しても注文は取り消さない）
type AuditSink interface {
	AppendOrder(ctx context.Context, rec model.OrderAuditRecord) error
}

// 配送先の検証（validatorパッケージが実装）
type OrderValidator interface {
	ValidateShipping(in PlaceOrderInput) error
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

type OrderUsecase struct {
	tx         repo.TransactionManager
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	validator  OrderValidator
	audit      AuditSink
	clock      Clock
	logger     *log.Logger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	validator OrderValidator,
	audit AuditSink,
	clock Clock,
	logger *log.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		tx:         tx,
		orders:     orders,
		orderItems: orderItems,
		validator:  validator,
		audit:      audit,
		clock:      clock,
		logger:     logger,
	}
}

type PlaceOrderInput struct {
	ShippingAddress string
	City            string
	PhoneNumber     string
}

type OrderItemOutput struct {
	ID        string           `json:"id"`
	VolumeID  string           `json:"volumeId"`
	Quantity  int64            `json:"quantity"`
	UnitPrice float64          `json:"unitPrice"`
	Subtotal  float64          `json:"subtotal"`
	Volume    *OrderVolumeView `json:"volume,omitempty"`
}

type OrderVolumeView struct {
	VolumeNumber int              `json:"volumeNumber"`
	CoverImage   string           `json:"coverImage"`
	Manga        MangaSummaryView `json:"manga"`
}

type OrderOutput struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId"`
	Status          string            `json:"status"`
	IsPaid          bool              `json:"isPaid"`
	TotalAmount     float64           `json:"totalAmount"`
	ShippingAddress string            `json:"shippingAddress"`
	City            string            `json:"city"`
	PhoneNumber     string            `json:"phoneNumber"`
	PlacedAt        time.Time         `json:"placedAt"`
	Items           []OrderItemOutput `json:"items"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// PlaceOrder はカートを注文に変換する。
// 在庫の再確認・価格の確定・注文作成・在庫減算・カートを空にする、までを1トランザクションで行う。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, newKindError(ErrUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateShipping(in); err != nil {
		return OrderOutput{}, newKindError(ErrValidation, err.Error())
	}
	in.ShippingAddress = strings.TrimSpace(in.ShippingAddress)
	in.City = strings.TrimSpace(in.City)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	var (
		out OrderOutput
		rec model.OrderAuditRecord
	)

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		user, err := r.Users().FindByID(ctx, userID)
		if errors.Is(err, repo.ErrUserNotFound) {
			return newKindError(ErrUserNotFound, "user not found")
		}
		if err != nil {
			return internalError(err)
		}

		//同じカートの同時確定は後続をここで待たせる（待った側は空の明細を読む）
		cart, err := r.Carts().LockByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return newKindError(ErrCartNotFound, "cart not found")
		}
		if err != nil {
			return internalError(err)
		}

		lines, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return internalError(err)
		}
		if len(lines) == 0 {
			return newKindError(ErrCartEmpty, "cart is empty")
		}

		//巻の行をロックしてから在庫を見る
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.VolumeID)
		}
		locked, err := r.Inventory().LockForCheckout(ctx, ids)
		if err != nil {
			return internalError(err)
		}
		volumes := make(map[string]model.Volume, len(locked))
		for _, v := range locked {
			volumes[v.ID] = v
		}

		priced := make([]pricing.Line, 0, len(lines))
		items := make([]model.OrderItem, 0, len(lines))
		for _, l := range lines {
			v, ok := volumes[l.VolumeID]
			if !ok {
				return newKindError(ErrVolumeNotFound, "volume not found")
			}
			if !v.Purchasable() {
				return newKindError(ErrVolumeUnavailable, "volume is not available for purchase")
			}
			if l.Quantity > v.Stock {
				return newStockError(v.ID, v.Stock, l.Quantity)
			}

			priced = append(priced, pricing.Line{Price: v.Price, Discount: v.Discount, Quantity: l.Quantity})
			items = append(items, model.OrderItem{
				VolumeID:  v.ID,
				Quantity:  l.Quantity,
				UnitPrice: pricing.FinalUnitPrice(v.Price, v.Discount),
				Volume:    v,
			})
		}

		total := pricing.OrderTotal(priced)
		now := u.clock.Now()

		order := model.Order{
			UserID:          userID,
			TotalAmount:     total,
			IsPaid:          false,
			Status:          model.OrderStatusPending,
			ShippingAddress: in.ShippingAddress,
			City:            in.City,
			PhoneNumber:     in.PhoneNumber,
			PlacedAt:        now,
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return internalError(err)
		}
		order.ID = orderID

		//注文明細一括作成（価格はここで固定）
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return internalError(err)
		}

		//在庫減算。1件でも負けたら全部ロールバック
		ledger := NewInventoryLedger(r.Inventory())
		for _, it := range items {
			if err := ledger.Decrement(ctx, it.VolumeID, it.Quantity); err != nil {
				return err
			}
		}

		//カートは残して明細だけ消す
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return internalError(err)
		}
		if err := r.Carts().Touch(ctx, cart.ID); err != nil {
			return internalError(err)
		}

		out = toOrderOutput(order, items)
		rec = toAuditRecord(*user, order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, u.fail("order.place", err, userID)
	}

	u.logger.Infof("order %s placed by user %s: total %s", out.ID, userID, rec.TotalAmount.StringFixed(2))

	//コミット後。失敗してもログだけ。切断されても書き切る
	if u.audit != nil {
		if err := u.audit.AppendOrder(context.WithoutCancel(ctx), rec); err != nil {
			u.logger.Errorj(log.JSON{
				"op":       "order.audit",
				"order_id": rec.OrderID,
				"user_id":  userID,
				"error":    err.Error(),
			})
		}
	}

	return out, nil
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, page int, limit int) (OrderListOutput, error) {
	if userID == "" {
		return OrderListOutput{}, newKindError(ErrUnauthorized, "unauthorized")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, u.fail("order.list", internalError(err), userID)
	}

	out := OrderListOutput{
		Items: make([]OrderOutput, 0, len(orders)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for _, o := range orders {
		items, err := u.orderItems.ListByOrderID(ctx, o.ID)
		if err != nil {
			return OrderListOutput{}, u.fail("order.list", internalError(err), userID)
		}
		out.Items = append(out.Items, toOrderOutput(o, items))
	}
	return out, nil
}

// 自分の注文1件。他人の注文は存在しない扱い
func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	if userID == "" {
		return OrderOutput{}, newKindError(ErrUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(orderID) == "" {
		return OrderOutput{}, newKindError(ErrValidation, "invalid order id")
	}

	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderOutput{}, newKindError(ErrNotFound, "order not found")
	}
	if err != nil {
		return OrderOutput{}, u.fail("order.get", internalError(err), userID)
	}
	if o.UserID != userID {
		return OrderOutput{}, newKindError(ErrNotFound, "order not found")
	}

	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		return OrderOutput{}, u.fail("order.get", internalError(err), userID)
	}
	return toOrderOutput(o, items), nil
}

func (u *OrderUsecase) fail(op string, err error, userID string) error {
	logFailure(u.logger, op, err, log.JSON{"user_id": userID})
	return err
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		IsPaid:          o.IsPaid,
		TotalAmount:     money(o.TotalAmount),
		ShippingAddress: o.ShippingAddress,
		City:            o.City,
		PhoneNumber:     o.PhoneNumber,
		PlacedAt:        o.PlacedAt,
		Items:           make([]OrderItemOutput, 0, len(items)),
	}
	for _, it := range items {
		item := OrderItemOutput{
			ID:        it.ID,
			VolumeID:  it.VolumeID,
			Quantity:  it.Quantity,
			UnitPrice: money(it.UnitPrice),
			Subtotal:  money(pricing.LineSubtotal(it.UnitPrice, it.Quantity)),
		}
		if it.Volume.ID != "" {
			item.Volume = &OrderVolumeView{
				VolumeNumber: it.Volume.VolumeNumber,
				CoverImage:   it.Volume.CoverImage,
				Manga:        toMangaSummary(it.Volume.Manga),
			}
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func toAuditRecord(user model.User, o model.Order, items []model.OrderItem) model.OrderAuditRecord {
	rec := model.OrderAuditRecord{
		OrderID:     o.ID,
		UserID:      user.ID,
		UserName:    user.Name(),
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		City:        o.City,
		PhoneNumber: o.PhoneNumber,
		PlacedAt:    o.PlacedAt,
		Items:       make([]model.OrderAuditItem, 0, len(items)),
	}
	for _, it := range items {
		rec.Items = append(rec.Items, model.OrderAuditItem{
			VolumeID:     it.VolumeID,
			MangaTitle:   it.Volume.Manga.Title,
			VolumeNumber: it.Volume.VolumeNumber,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			LineTotal:    pricing.LineSubtotal(it.UnitPrice, it.Quantity).Round(2),
		})
	}
	return rec
}

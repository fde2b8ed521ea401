package handler

import (
	"net/http"

	"mangastore/internal/config"
	"mangastore/internal/middleware"
	"mangastore/internal/repository"
	"mangastore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartRequest struct {
	VolumeID string `json:"volumeId"`
	Quantity *int64 `json:"quantity"`
}

type UpdateCartItemRequest struct {
	CartItemID string `json:"cartItemId"`
	Quantity   int64  `json:"quantity"`
}

type CartCountResponse struct {
	Count int64 `json:"count"`
}

// /cart 配下を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.ActiveUserGuard(userRepo))

	g.GET("", h.getCart)
	g.POST("/add", h.addToCart)
	g.PUT("/update", h.updateItem)
	g.DELETE("/remove/:cartItemId", h.removeItem)
	g.DELETE("/clear", h.clear)
	g.GET("/count", h.count)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "cart retrieved successfully", out)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	// 省略時は1冊
	qty := int64(1)
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddItem(c.Request().Context(), userID, usecase.AddCartInput{
		VolumeID: req.VolumeID,
		Quantity: qty,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "item added to cart successfully", out)
}

func (h *CartHandler) updateItem(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), userID, usecase.UpdateCartItemInput{
		CartItemID: req.CartItemID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "cart item updated successfully", out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), userID, c.Param("cartItemId"))
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "item removed from cart successfully", out)
}

func (h *CartHandler) clear(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	if err := h.uc.Clear(c.Request().Context(), userID); err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "cart cleared successfully", nil)
}

func (h *CartHandler) count(c echo.Context) error {
	userID, authed := getUserIDFromContext(c)
	if !authed {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	n, err := h.uc.ItemCount(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "cart count retrieved successfully", CartCountResponse{Count: n})
}

package handler

import (
	"net/http"

	"mangastore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /volumes の公開API
type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

// DI
func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/volumes/:id", h.volume)
}

func (h *CatalogHandler) volume(c echo.Context) error {
	out, err := h.uc.GetVolume(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "volume retrieved successfully", out)
}

package handler

import (
	"net/http"

	"mangastore/internal/middleware"
	"mangastore/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全レスポンス共通の形
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// 在庫不足のときに data に入れる
type StockErrorData struct {
	VolumeID  string `json:"volumeId"`
	Available int64  `json:"available"`
	Requested int64  `json:"requested"`
}

func ok(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: false, Message: message})
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	he, isHTTP := usecase.AsHTTPError(err)
	if !isHTTP {
		//500
		c.Logger().Errorf("unhandled error: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}

	res := Response{Success: false, Message: he.Message}
	if se, isStock := usecase.AsStockError(err); isStock {
		res.Data = StockErrorData{
			VolumeID:  se.VolumeID,
			Available: se.Available,
			Requested: se.Requested,
		}
	}
	return c.JSON(he.Status, res)
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	return middleware.UserID(c)
}

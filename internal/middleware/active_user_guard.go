package middleware

import (
	"errors"
	"net/http"

	"mangastore/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンのユーザーがまだ存在して、買い物できる状態かを確認。
// 停止・退会になったユーザーのトークンはここで401にする。
func ActiveUserGuard(userRepo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserID(c)
			if !ok {
				return unauthorized(c)
			}

			//DBから最新のuserを取得する
			user, err := userRepo.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrUserNotFound) || (err == nil && user == nil) {
				return unauthorized(c)
			}
			if err != nil {
				c.Logger().Errorf("active user guard: %v", err)
				return c.JSON(http.StatusInternalServerError, errorResponse{Success: false, Message: "internal error"})
			}

			if !user.CanShop() {
				return unauthorized(c)
			}

			return next(c)
		}
	}
}

package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// 404系
	ErrNotFound       = errors.New("not found")
	ErrCartNotFound   = errors.New("cart not found")
	ErrVolumeNotFound = errors.New("volume not found")
	ErrUserNotFound   = errors.New("user not found")

	// 400系
	ErrCartEmpty         = errors.New("cart is empty")
	ErrVolumeUnavailable = errors.New("volume is not available for purchase")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation error")

	//401
	ErrUnauthorized = errors.New("unauthorized")
	//409 一意制約
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// usecaseが返すエラー。handlerはStatusとMessageだけを見る。
// Kind は上のどれか（errors.Isで判定できる）。
type HTTPError struct {
	Status  int
	Message string
	Kind    error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Kind
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Kind:    kindForStatus(status),
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 種類からステータスを決めて包む
func newKindError(kind error, message string) error {
	return &HTTPError{
		Status:  statusForKind(kind),
		Message: message,
		Kind:    kind,
	}
}

func statusForKind(kind error) int {
	switch {
	case errors.Is(kind, ErrNotFound),
		errors.Is(kind, ErrCartNotFound),
		errors.Is(kind, ErrVolumeNotFound),
		errors.Is(kind, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(kind, ErrCartEmpty),
		errors.Is(kind, ErrVolumeUnavailable),
		errors.Is(kind, ErrInsufficientStock),
		errors.Is(kind, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(kind, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrInternal
	}
}

// 在庫不足。どの巻が何冊残っているかを必ず持つ。
type StockError struct {
	VolumeID  string
	Available int64
	Requested int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("volume %q does not have enough stock. Available: %d, Requested: %d", e.VolumeID, e.Available, e.Requested)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func newStockError(volumeID string, available, requested int64) error {
	se := &StockError{VolumeID: volumeID, Available: available, Requested: requested}
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: se.Error(),
		Kind:    se,
	}
}

// 在庫不足の詳細を取り出す
func AsStockError(err error) (*StockError, bool) {
	var se *StockError
	ok := errors.As(err, &se)
	return se, ok
}

// DBなど想定外のエラー。詳細は返さない。
func internalError(err error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "db error",
		Kind:    fmt.Errorf("%w: %w", ErrInternal, err),
	}
}

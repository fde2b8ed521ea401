package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"mangastore/internal/usecase"
)

// 入力が不正
var ErrInvalidInput = errors.New("invalid input")

// 数字・空白・+-() のみ、数字は7〜15桁
var phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// 配送先の入力を検証
func (v *orderValidator) ValidateShipping(in usecase.PlaceOrderInput) error {
	addr := strings.TrimSpace(in.ShippingAddress)
	city := strings.TrimSpace(in.City)
	phone := strings.TrimSpace(in.PhoneNumber)

	// 必須チェック
	if addr == "" {
		return fmt.Errorf("%w: shippingAddress is required", ErrInvalidInput)
	}
	if city == "" {
		return fmt.Errorf("%w: city is required", ErrInvalidInput)
	}
	if phone == "" {
		return fmt.Errorf("%w: phoneNumber is required", ErrInvalidInput)
	}

	// 長さ（カラム幅）
	if len(addr) > 500 {
		return fmt.Errorf("%w: shippingAddress is too long", ErrInvalidInput)
	}
	if len(city) > 100 {
		return fmt.Errorf("%w: city is too long", ErrInvalidInput)
	}

	if !isPhoneLike(phone) {
		return fmt.Errorf("%w: invalid phoneNumber", ErrInvalidInput)
	}
	return nil
}

func isPhoneLike(s string) bool {
	if !phonePattern.MatchString(s) {
		return false
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

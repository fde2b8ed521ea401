package model

import "github.com/google/uuid"

// 主キーは UUID 文字列
func newID() string {
	return uuid.NewString()
}

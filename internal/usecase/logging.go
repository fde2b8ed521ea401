package usecase

import (
	"io"

	"github.com/labstack/gommon/log"
)

// 500系だけ詳細をログに残す（レスポンスには出さない）
func logFailure(l *log.Logger, op string, err error, fields log.JSON) {
	he, ok := AsHTTPError(err)
	if ok && he.Status < 500 {
		return
	}

	j := log.JSON{"op": op, "error": err.Error()}
	if ok && he.Kind != nil {
		j["error"] = he.Kind.Error()
	}
	for k, v := range fields {
		j[k] = v
	}
	l.Errorj(j)
}

// テストなど出力を捨てたいとき用
func NewDiscardLogger() *log.Logger {
	l := log.New("discard")
	l.SetOutput(io.Discard)
	return l
}

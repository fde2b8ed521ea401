package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"mangastore/internal/config"
	"mangastore/internal/domain/model"
	"mangastore/internal/infra/db/dbtest"
	"mangastore/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t     *testing.T
	e     *echo.Echo
	token string
}

func (c *apiClient) do(method, path string, body any) (int, envelope) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if c.token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func newTestServer(t *testing.T) (*echo.Echo, *gorm.DB, config.Config) {
	t.Helper()

	gdb := dbtest.Open(t)
	cfg := config.Config{
		GoEnv:          "test",
		JWTSecret:      "test-secret",
		AccessTokenTTL: 15 * time.Minute,
		FEURL:          "http://localhost:3000",
		AuditXLSXPath:  filepath.Join(t.TempDir(), "orders.xlsx"),
	}
	return buildServer(cfg, usecase.NewDiscardLogger(), gdb), gdb, cfg
}

func TestServer_CheckoutFlow(t *testing.T) {
	e, gdb, cfg := newTestServer(t)
	c := &apiClient{t: t, e: e}

	code, _ := c.do(http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)

	//会員登録 → ログイン
	code, env := c.do(http.MethodPost, "/auth/register", map[string]string{
		"email": "reader@example.com", "password": "a-long-passphrase", "firstName": "Hana", "lastName": "Sato",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, _ = c.do(http.MethodPost, "/auth/register", map[string]string{
		"email": "reader@example.com", "password": "a-long-passphrase",
	})
	assert.Equal(t, http.StatusConflict, code)

	code, env = c.do(http.MethodPost, "/auth/login", map[string]string{
		"email": "reader@example.com", "password": "wrong-passphrase",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, env = c.do(http.MethodPost, "/auth/login", map[string]string{
		"email": "reader@example.com", "password": "a-long-passphrase",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	login := decode[struct {
		Token struct {
			AccessToken string `json:"accessToken"`
		} `json:"token"`
	}](t, env.Data)
	require.NotEmpty(t, login.Token.AccessToken)

	//トークン無しは401
	code, _ = c.do(http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	c.token = login.Token.AccessToken
	v := dbtest.SeedVolume(t, gdb, dbtest.VolumeSpec{Title: "Vinland Saga", Price: "10.00", Discount: "0.10", Stock: 5})

	//在庫超えは400で残数つき
	code, env = c.do(http.MethodPost, "/cart/add", map[string]any{"volumeId": v.ID, "quantity": 6})
	require.Equal(t, http.StatusBadRequest, code)
	stock := decode[struct {
		VolumeID  string `json:"volumeId"`
		Available int64  `json:"available"`
		Requested int64  `json:"requested"`
	}](t, env.Data)
	assert.Equal(t, v.ID, stock.VolumeID)
	assert.Equal(t, int64(5), stock.Available)
	assert.Equal(t, int64(6), stock.Requested)

	//quantity省略は1冊
	code, _ = c.do(http.MethodPost, "/cart/add", map[string]any{"volumeId": v.ID})
	require.Equal(t, http.StatusOK, code)
	code, env = c.do(http.MethodPost, "/cart/add", map[string]any{"volumeId": v.ID, "quantity": 4})
	require.Equal(t, http.StatusOK, code)
	cart := decode[usecase.CartView](t, env.Data)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(5), cart.Items[0].Quantity)
	assert.Equal(t, 45.0, cart.Summary.Total)

	code, env = c.do(http.MethodGet, "/cart/count", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"count":5}`, string(env.Data))

	//配送先が不正
	code, _ = c.do(http.MethodPost, "/order/create", map[string]string{"shippingAddress": "", "city": "Tokyo", "phoneNumber": "0312345678"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = c.do(http.MethodPost, "/order/create", map[string]string{
		"shippingAddress": "1-2-3 Jingumae", "city": "Tokyo", "phoneNumber": "03-1234-5678",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	order := decode[usecase.OrderOutput](t, env.Data)
	assert.Equal(t, 45.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 9.0, order.Items[0].UnitPrice)

	code, env = c.do(http.MethodPost, "/order/create", map[string]string{
		"shippingAddress": "1-2-3 Jingumae", "city": "Tokyo", "phoneNumber": "03-1234-5678",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "cart is empty", env.Message)

	code, env = c.do(http.MethodGet, "/order?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, code)
	list := decode[usecase.OrderListOutput](t, env.Data)
	assert.Equal(t, int64(1), list.Total)

	code, env = c.do(http.MethodGet, "/order/"+order.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, order.ID, decode[usecase.OrderOutput](t, env.Data).ID)

	code, env = c.do(http.MethodGet, "/volumes/"+v.ID, nil)
	require.Equal(t, http.StatusOK, code)
	detail := decode[usecase.VolumeDetailView](t, env.Data)
	assert.Equal(t, int64(0), detail.Stock)
	assert.False(t, detail.InStock)

	//監査：DBとxlsxの両方
	var logs int64
	require.NoError(t, gdb.Model(&model.AuditLog{}).Where("resource_id = ?", order.ID).Count(&logs).Error)
	assert.Equal(t, int64(1), logs)

	file, err := xlsx.OpenFile(cfg.AuditXLSXPath)
	require.NoError(t, err)
	sheet := file.Sheet["Orders"]
	require.NotNil(t, sheet)
	assert.Len(t, sheet.Rows, 2)
}

func TestServer_SuspendedUserIsRejected(t *testing.T) {
	e, gdb, _ := newTestServer(t)
	c := &apiClient{t: t, e: e}

	code, _ := c.do(http.MethodPost, "/auth/register", map[string]string{
		"email": "gone@example.com", "password": "a-long-passphrase",
	})
	require.Equal(t, http.StatusCreated, code)

	code, env := c.do(http.MethodPost, "/auth/login", map[string]string{
		"email": "gone@example.com", "password": "a-long-passphrase",
	})
	require.Equal(t, http.StatusOK, code)
	login := decode[struct {
		Token struct {
			AccessToken string `json:"accessToken"`
		} `json:"token"`
	}](t, env.Data)
	c.token = login.Token.AccessToken

	//発行後に停止されたらトークンがあっても通さない
	require.NoError(t, gdb.Model(&model.User{}).Where("email = ?", "gone@example.com").
		Update("status", model.UserStatusSuspended).Error)

	code, _ = c.do(http.MethodGet, "/cart", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestServer_UnknownVolume(t *testing.T) {
	e, _, _ := newTestServer(t)
	c := &apiClient{t: t, e: e}

	code, env := c.do(http.MethodGet, "/volumes/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

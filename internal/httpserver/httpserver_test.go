package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tablegames/shop/internal/db"
	"github.com/tablegames/shop/internal/hash"
	"github.com/tablegames/shop/internal/httpserver"
	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/repo"
	"github.com/tablegames/shop/internal/service"
)

type testEnv struct {
	T    *testing.T
	E    *echo.Echo
	Repo *repo.Repo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))

	r := repo.New(gdb)
	tokens := &service.TokenService{Repo: r}

	e := echo.New()
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHandler{Repo: r, Tokens: tokens},
		ProductHandler: &httpserver.ProductHandler{Catalog: &service.CatalogService{Repo: r}, StaticDir: t.TempDir(), ImagesDir: "img"},
		CartHandler:    &httpserver.CartHandler{Cart: &service.CartService{Repo: r}},
		OrderHandler:   &httpserver.OrderHandler{Orders: &service.OrderService{Repo: r}},
		ProfileHandler: &httpserver.ProfileHandler{Repo: r, Orders: &service.OrderService{Repo: r}},
		Auth:           &httpserver.TokenAuth{Tokens: tokens},
		StaticDir:      t.TempDir(),
	})

	return &testEnv{T: t, E: e, Repo: r}
}

func (env *testEnv) doJSON(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) doMultipart(path string, fields map[string]string, token string) *httptest.ResponseRecorder {
	env.T.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(env.T, w.WriteField(k, v))
	}
	require.NoError(env.T, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) login(login, password string) string {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/login", map[string]string{
		"login":    login,
		"password": password,
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.T, resp.Token)
	return resp.Token
}

func (env *testEnv) registerAndLogin(login string) string {
	env.T.Helper()

	rec := env.doJSON(http.MethodPost, "/registration", map[string]string{
		"first_name": "Test",
		"last_name":  "User",
		"login":      login,
		"password":   "secret",
	}, "")
	require.Equal(env.T, http.StatusOK, rec.Code)

	return env.login(login, "secret")
}

func (env *testEnv) adminToken() string {
	env.T.Helper()

	passwordHash, err := hash.HashPassword("admin-secret")
	require.NoError(env.T, err)
	require.NoError(env.T, env.Repo.CreateUser(context.Background(), &models.User{
		Admin:        true,
		Login:        "root",
		PasswordHash: passwordHash,
		RegDate:      time.Now(),
	}))

	return env.login("root", "admin-secret")
}

func (env *testEnv) seedProduct(name string, price float64, stock int) *models.Product {
	env.T.Helper()
	product := &models.Product{Name: name, Price: price, StockCount: stock}
	require.NoError(env.T, env.Repo.CreateProduct(context.Background(), product))
	return product
}

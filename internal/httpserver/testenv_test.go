package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/toggar/toggar-backend/internal/hash"
	"github.com/toggar/toggar-backend/internal/models"
	"github.com/toggar/toggar-backend/internal/repo"
	"github.com/toggar/toggar-backend/internal/service"
	"github.com/toggar/toggar-backend/internal/tokens"
)

var (
	testSecret = []byte("test_secret")
	dbSeq      atomic.Int64
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:httpsrv%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.Account{}, &models.Category{}, &models.Product{}))

	r := repo.New(gdb)
	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())

	Register(e, &Deps{
		DB: gdb,
		Auth: &AuthHTTP{
			Svc: &service.AuthService{Repo: r, JWTSecret: testSecret, TokenTTL: 24 * time.Hour},
		},
		Catalog: &CatalogHTTP{
			Svc: &service.CatalogService{Repo: r},
		},
		JWTSecret: testSecret,
	})

	return &testEnv{T: t, E: e, DB: gdb}
}

func (env *testEnv) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
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

func (env *testEnv) decode(rec *httptest.ResponseRecorder, dest any) {
	env.T.Helper()
	require.NoError(env.T, json.Unmarshal(rec.Body.Bytes(), dest))
}

// createAccount plants an account directly and returns a valid token for
// it, skipping the register/login round trip.
func (env *testEnv) createAccount(email, role string) string {
	env.T.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(env.T, err)

	acc := models.Account{Name: "Test " + role, Email: email, PasswordHash: pwHash, Role: role}
	require.NoError(env.T, env.DB.Create(&acc).Error)

	token, err := tokens.Issue(&acc, testSecret, time.Hour)
	require.NoError(env.T, err)
	return token
}

func (env *testEnv) adminToken() string {
	return env.createAccount("admin@test.com", models.RoleAdmin)
}

func (env *testEnv) userToken() string {
	return env.createAccount("user@test.com", models.RoleUser)
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body: %s", rec.Body.String())
}

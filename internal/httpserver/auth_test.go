package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toggar/toggar-backend/internal/models"
	"github.com/toggar/toggar-backend/internal/tokens"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{"name": "Ana", "email": "ana@x.com", "password": "pw123"}
	rec := env.doJSON(http.MethodPost, "/api/auth/register", "", payload)
	requireStatus(t, rec, http.StatusCreated)

	var resp struct {
		Message string `json:"message"`
		UserID  uint   `json:"userId"`
	}
	env.decode(rec, &resp)
	require.Equal(t, "User registered successfully", resp.Message)
	require.NotZero(t, resp.UserID)

	// Same email again conflicts.
	rec = env.doJSON(http.MethodPost, "/api/auth/register", "", payload)
	requireStatus(t, rec, http.StatusBadRequest)
	require.Contains(t, rec.Body.String(), "User already exists")
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/auth/register", "", map[string]string{"email": "x@y.z"})
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestLoginEndpoint(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{"name": "Ana", "email": "ana@x.com", "password": "pw123"}
	requireStatus(t, env.doJSON(http.MethodPost, "/api/auth/register", "", payload), http.StatusCreated)

	rec := env.doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@x.com", "password": "pw123"})
	requireStatus(t, rec, http.StatusOK)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    uint   `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	env.decode(rec, &resp)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "Ana", resp.User.Name)
	require.Equal(t, models.RoleUser, resp.User.Role)

	claims, err := tokens.Parse(resp.Token, testSecret)
	require.NoError(t, err)
	require.Equal(t, resp.User.ID, claims.UserID)
	require.Equal(t, "ana@x.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]string{"name": "Ana", "email": "ana@x.com", "password": "pw123"}
	requireStatus(t, env.doJSON(http.MethodPost, "/api/auth/register", "", payload), http.StatusCreated)

	wrongPassword := env.doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "ana@x.com", "password": "wrong"})
	unknownEmail := env.doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@x.com", "password": "pw123"})

	requireStatus(t, wrongPassword, http.StatusBadRequest)
	requireStatus(t, unknownEmail, http.StatusBadRequest)
	require.Contains(t, wrongPassword.Body.String(), "Invalid credentials")
	// No signal distinguishing unknown email from wrong password.
	require.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

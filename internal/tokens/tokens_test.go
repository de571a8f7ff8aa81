package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/toggar/toggar-backend/internal/models"
)

var testSecret = []byte("test_secret")

func testAccount() *models.Account {
	return &models.Account{
		ID:    42,
		Name:  "Ana",
		Email: "ana@x.com",
		Role:  models.RoleUser,
	}
}

func TestIssueAndParse(t *testing.T) {
	raw, err := Issue(testAccount(), testSecret, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := Parse(raw, testSecret)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "ana@x.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseExpired(t *testing.T) {
	raw, err := Issue(testAccount(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = Parse(raw, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	raw, err := Issue(testAccount(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = Parse(raw, []byte("other_secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	for _, raw := range []string{"", "not.a.token", "aaaa"} {
		_, err := Parse(raw, testSecret)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

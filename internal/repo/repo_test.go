package repo

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/toggar/toggar-backend/internal/models"
)

var dbSeq atomic.Int64

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	dsn := fmt.Sprintf("file:repo%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.Account{}, &models.Category{}, &models.Product{}))
	return New(gdb)
}

func TestFindAccountByEmail(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	_, err := r.FindAccountByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	acc := models.Account{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: models.RoleUser}
	require.NoError(t, r.CreateAccount(ctx, &acc))
	require.NotZero(t, acc.ID)

	found, err := r.FindAccountByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, acc.ID, found.ID)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	// Two registrations can pass the service-level existence check at
	// the same time; the unique index decides, and the losing insert
	// must come back as ErrEmailTaken, not a raw driver error.
	r := newTestRepo(t)
	ctx := context.Background()

	acc := models.Account{Name: "Ana", Email: "ana@x.com", PasswordHash: "h", Role: models.RoleUser}
	require.NoError(t, r.CreateAccount(ctx, &acc))

	dup := models.Account{Name: "Imposter", Email: "ana@x.com", PasswordHash: "h2", Role: models.RoleUser}
	require.ErrorIs(t, r.CreateAccount(ctx, &dup), ErrEmailTaken)
}

func TestUpdateMissingRowIsNoOp(t *testing.T) {
	// Matches the write endpoints' contract: updates against absent ids
	// succeed without touching anything.
	r := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, r.UpdateCategory(ctx, 999, "Ghost"))
	require.NoError(t, r.DeleteProduct(ctx, 999))
}

func TestListProductsJoinsCategoryName(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	cat := models.Category{Name: "Cases"}
	require.NoError(t, r.CreateCategory(ctx, &cat))
	require.NoError(t, r.CreateProduct(ctx, &models.Product{Name: "Zip Case", Price: 9.99, CategoryID: &cat.ID}))
	require.NoError(t, r.CreateProduct(ctx, &models.Product{Name: "Alone", Price: 1}))

	rows, err := r.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Ordered by product name.
	require.Equal(t, "Alone", rows[0].Name)
	require.Nil(t, rows[0].CategoryName)
	require.Equal(t, "Zip Case", rows[1].Name)
	require.NotNil(t, rows[1].CategoryName)
	require.Equal(t, "Cases", *rows[1].CategoryName)
}

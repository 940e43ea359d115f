package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/misthy/shop-api/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// One connection only, every session must see the same in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Product{}))

	return &GormRepo{DB: db}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	first := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h1"}
	require.NoError(t, r.CreateUser(ctx, &first))
	require.NotZero(t, first.ID)

	// Same email, different username: the unique index must reject it.
	second := models.User{Username: "alice2", Email: "alice@example.com", PasswordHash: "h2"}
	err := r.CreateUser(ctx, &second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, r.DB.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEmailExists(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	exists, err := r.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, r.CreateUser(ctx, &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}))

	exists, err = r.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetUserByEmail(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h"}
	require.NoError(t, r.CreateUser(ctx, &user))

	got, err := r.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "alice", got.Username)

	_, err = r.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetProducts_InsertionOrder(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	names := []string{"Shoe", "Hat", "Bag"}
	for _, name := range names {
		prod := models.Product{
			ImagePath:   "uploads/" + name + ".png",
			ProductName: name,
			Description: "d",
			Category:    "c",
			Price:       1,
		}
		require.NoError(t, r.CreateProduct(ctx, &prod))
	}

	items, err := r.GetProducts(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, name := range names {
		assert.Equal(t, name, items[i].ProductName)
	}
}

func TestGetProducts_Empty(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)

	items, err := r.GetProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

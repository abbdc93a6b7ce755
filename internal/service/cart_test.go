package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablegames/shop/internal/repo"
	"github.com/tablegames/shop/internal/service"
)

func TestCartAddMergesAndMovesStock(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	product := createProduct(t, r, "Catan", 45, 10)

	ctx := context.Background()

	item, err := svc.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 2, item.Count)

	item, err = svc.Add(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 5, item.Count)

	got, err := r.ProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.StockCount)

	// returning everything deletes the row and restores stock
	item, err = svc.Add(ctx, user.ID, product.ID, -5)
	require.NoError(t, err)
	require.Nil(t, item)
	require.EqualValues(t, 0, countRows(t, r, "cart_items"))

	got, err = r.ProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 10, got.StockCount)
}

func TestCartAddInsufficientStock(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	product := createProduct(t, r, "Carcassonne", 30, 1)

	ctx := context.Background()
	_, err := svc.Add(ctx, user.ID, product.ID, 2)
	require.ErrorIs(t, err, service.ErrConflict)

	require.EqualValues(t, 0, countRows(t, r, "cart_items"))
	got, err := r.ProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.StockCount)
}

func TestCartAddInvalidDeltas(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	product := createProduct(t, r, "Azul", 35, 10)

	ctx := context.Background()

	_, err := svc.Add(ctx, user.ID, product.ID, 0)
	require.ErrorIs(t, err, service.ErrValidation)

	_, err = svc.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	// removing more than is in the cart rolls everything back
	_, err = svc.Add(ctx, user.ID, product.ID, -3)
	require.ErrorIs(t, err, service.ErrValidation)

	item, err := r.CartItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, item.Count)

	got, err := r.ProductByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 8, got.StockCount)
}

func TestCartAddUnknownProduct(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)

	_, err := svc.Add(context.Background(), user.ID, 99, 1)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCartCountWritesAreRelative(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	product := createProduct(t, r, "Catan", 45, 10)

	ctx := context.Background()
	item, err := svc.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	// the write adds to the stored count instead of overwriting it, so a
	// writer holding a stale copy of the line cannot clobber another's
	// merge
	merged, err := r.MergeCartCount(ctx, item.ID, 3)
	require.NoError(t, err)
	require.True(t, merged)

	got, err := r.CartItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Count)

	// the guard refuses a merge that would push the stored count negative
	merged, err = r.MergeCartCount(ctx, item.ID, -6)
	require.NoError(t, err)
	require.False(t, merged)

	got, err = r.CartItem(ctx, user.ID, product.ID)
	require.NoError(t, err)
	require.Equal(t, 5, got.Count)

	// landing exactly on zero removes the line
	merged, err = r.MergeCartCount(ctx, item.ID, -5)
	require.NoError(t, err)
	require.True(t, merged)
	require.EqualValues(t, 0, countRows(t, r, "cart_items"))
}

func TestCartItemForUpdateReads(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	product := createProduct(t, r, "Azul", 35, 10)

	ctx := context.Background()
	_, err := svc.Add(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	require.NoError(t, r.Atomic(ctx, func(tx *repo.Repo) error {
		got, err := tx.CartItemForUpdate(ctx, user.ID, product.ID)
		require.NoError(t, err)
		require.Equal(t, 2, got.Count)

		_, err = tx.CartItemForUpdate(ctx, user.ID, 999)
		require.ErrorIs(t, err, repo.ErrNotFound)
		return nil
	}))
}

func TestCartView(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	first := createProduct(t, r, "Catan", 45, 10)
	second := createProduct(t, r, "Azul", 35, 10)

	ctx := context.Background()
	_, err := svc.Add(ctx, user.ID, first.ID, 2)
	require.NoError(t, err)
	_, err = svc.Add(ctx, user.ID, second.ID, 1)
	require.NoError(t, err)

	rows, err := svc.View(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Catan", rows[0].Name)
	require.Equal(t, 2, rows[0].Count)
	require.Equal(t, float64(45), rows[0].Price)
	require.Equal(t, "Azul", rows[1].Name)
}

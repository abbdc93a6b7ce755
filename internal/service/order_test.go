package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/service"
)

func TestPlaceOrderEmptyItems(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.OrderService{Repo: r}
	user := createUser(t, r, "alice", false)

	_, _, err := svc.Place(context.Background(), user.ID, "street 1", 10, "", nil)
	require.ErrorIs(t, err, service.ErrValidation)

	require.EqualValues(t, 0, countRows(t, r, "orders"))
	require.EqualValues(t, 0, countRows(t, r, "order_products"))
}

func TestPlaceOrderAtomic(t *testing.T) {
	r := newTestRepo(t)
	orders := &service.OrderService{Repo: r}
	cart := &service.CartService{Repo: r}
	user := createUser(t, r, "alice", false)
	first := createProduct(t, r, "Catan", 45, 10)
	second := createProduct(t, r, "Azul", 35, 10)

	ctx := context.Background()
	_, err := cart.Add(ctx, user.ID, first.ID, 2)
	require.NoError(t, err)
	_, err = cart.Add(ctx, user.ID, second.ID, 3)
	require.NoError(t, err)

	items := []service.PlacedItem{
		{ProductID: first.ID, Count: 2},
		{ProductID: second.ID, Count: 3},
	}
	order, lines, err := orders.Place(ctx, user.ID, "street 1", 195, "ring twice", items)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, lines, 2)
	require.Equal(t, first.ID, lines[0].ProductID)
	require.Equal(t, 2, lines[0].Count)
	require.Equal(t, second.ID, lines[1].ProductID)

	require.EqualValues(t, 1, countRows(t, r, "orders"))
	require.EqualValues(t, 2, countRows(t, r, "order_products"))
	// placing the order empties the whole cart
	require.EqualValues(t, 0, countRows(t, r, "cart_items"))
}

func TestSetStatusTransitions(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.OrderService{Repo: r}
	user := createUser(t, r, "alice", false)
	product := createProduct(t, r, "Catan", 45, 10)

	ctx := context.Background()
	order, _, err := svc.Place(ctx, user.ID, "street 1", 45, "", []service.PlacedItem{{ProductID: product.ID, Count: 1}})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(ctx, order.ID, models.OrderStatusConfirmed))
	require.NoError(t, svc.SetStatus(ctx, order.ID, models.OrderStatusShipped))

	// no going back, no skipping to an unknown state
	require.ErrorIs(t, svc.SetStatus(ctx, order.ID, models.OrderStatusPending), service.ErrValidation)
	require.ErrorIs(t, svc.SetStatus(ctx, order.ID, "lost"), service.ErrValidation)

	require.NoError(t, svc.SetStatus(ctx, order.ID, models.OrderStatusDelivered))
	// delivered is terminal
	require.ErrorIs(t, svc.SetStatus(ctx, order.ID, models.OrderStatusCancelled), service.ErrValidation)

	require.ErrorIs(t, svc.SetStatus(ctx, 999, models.OrderStatusConfirmed), service.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.OrderService{Repo: r}
	alice := createUser(t, r, "alice", false)
	require.NoError(t, r.DB.Exec("UPDATE users SET first_name = ?, last_name = ? WHERE id = ?", "Alice", "Smith", alice.ID).Error)
	bob := createUser(t, r, "bob", false)
	product := createProduct(t, r, "Catan", 45, 10)

	ctx := context.Background()
	_, _, err := svc.Place(ctx, alice.ID, "street 1", 45, "", []service.PlacedItem{{ProductID: product.ID, Count: 1}})
	require.NoError(t, err)
	_, _, err = svc.Place(ctx, bob.ID, "street 2", 90, "", []service.PlacedItem{{ProductID: product.ID, Count: 2}})
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Len(t, mine[0].Products, 1)
	require.Equal(t, "Catan", mine[0].Products[0].ProductName)
	require.Equal(t, float64(45), mine[0].Products[0].ProductPrice)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Alice Smith", all[0].Products[0].UserName)
}

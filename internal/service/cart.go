package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/repo"
)

// CartService keeps the per-user cart and product stock in lockstep:
// every cart delta moves the same amount of stock the other way, inside
// one transaction.
type CartService struct {
	Repo *repo.Repo
}

// Add merges delta into the (user, product) cart line. Positive delta
// takes stock, negative delta returns it. A resulting count of 0 removes
// the line. Returns the line after the merge, nil when it was removed.
func (s *CartService) Add(ctx context.Context, userID, productID uint, delta int) (*models.CartItem, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: count must not be 0", ErrValidation)
	}

	var result *models.CartItem
	err := s.Repo.Atomic(ctx, func(r *repo.Repo) error {
		if _, err := r.ProductByID(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return fmt.Errorf("%w: product %d", ErrNotFound, productID)
			}
			return err
		}

		// the stock write locks the product row first, so adds for the
		// same product queue up here instead of racing on the cart line
		applied, err := r.AdjustStock(ctx, productID, delta)
		if err != nil {
			return err
		}
		if !applied {
			return fmt.Errorf("%w: not enough stock", ErrConflict)
		}

		item, err := r.CartItemForUpdate(ctx, userID, productID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		if item == nil {
			if delta < 0 {
				return fmt.Errorf("%w: cart count would go negative", ErrValidation)
			}
			item = &models.CartItem{UserID: userID, ProductID: productID, Count: delta}
			if err := r.CreateCartItem(ctx, item); err != nil {
				if errors.Is(err, repo.ErrDuplicate) {
					return fmt.Errorf("%w: cart changed concurrently, retry", ErrConflict)
				}
				return err
			}
			result = item
			return nil
		}

		newCount := item.Count + delta
		if newCount < 0 {
			return fmt.Errorf("%w: cart count would go negative", ErrValidation)
		}
		merged, err := r.MergeCartCount(ctx, item.ID, delta)
		if err != nil {
			return err
		}
		if !merged {
			return fmt.Errorf("%w: cart changed concurrently, retry", ErrConflict)
		}
		if newCount == 0 {
			result = nil
			return nil
		}
		item.Count = newCount
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CartService) View(ctx context.Context, userID uint) ([]repo.CartRow, error) {
	return s.Repo.ViewCart(ctx, userID)
}

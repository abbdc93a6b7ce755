package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tablegames/shop/internal/models"
)

// CartRow is the joined cart view: one cart line with the product fields
// the storefront renders next to it.
type CartRow struct {
	ID           uint    `json:"id"`
	ProductID    uint    `json:"product_id"`
	Count        int     `json:"count"`
	Name         string  `json:"name"`
	ProductImage string  `json:"product_image"`
	Price        float64 `json:"price"`
	StockCount   int     `json:"stock_count"`
}

func (r *Repo) CartItem(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// CartItemForUpdate reads the (user, product) line and holds its row
// lock until the surrounding transaction ends. sqlite has no FOR UPDATE
// and allows a single writer at a time, so the clause is postgres-only.
func (r *Repo) CartItemForUpdate(ctx context.Context, userID, productID uint) (*models.CartItem, error) {
	q := r.DB.WithContext(ctx)
	if r.DB.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var item models.CartItem
	err := q.Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// CreateCartItem inserts a new cart line. A concurrent insert of the
// same (user, product) pair hits the unique index and comes back as
// ErrDuplicate.
func (r *Repo) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return duplicate(r.DB.WithContext(ctx).Create(item).Error)
}

// MergeCartCount adds delta to the line's stored count and drops the
// line when the result lands on 0. The write is relative with a guard,
// so a count changed since the caller last read it can never be
// clobbered or pushed below zero; a false return means the guard held
// the update back.
func (r *Repo) MergeCartCount(ctx context.Context, id uint, delta int) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("id = ? AND count + ? >= 0", id, delta).
		Update("count", gorm.Expr("count + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	err := r.DB.WithContext(ctx).
		Where("id = ? AND count = 0", id).
		Delete(&models.CartItem{}).Error
	return true, err
}

func (r *Repo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

func (r *Repo) ViewCart(ctx context.Context, userID uint) ([]CartRow, error) {
	var rows []CartRow
	err := r.DB.WithContext(ctx).Raw(`
		SELECT tc.id, tc.product_id, tc.count,
		       p.name, p.product_image, p.price, p.stock_count
		FROM cart_items AS tc
		LEFT JOIN products AS p ON p.id = tc.product_id
		WHERE tc.user_id = ?
		ORDER BY tc.id`, userID).
		Scan(&rows).Error
	return rows, err
}

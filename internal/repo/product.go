package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tablegames/shop/internal/models"
)

func (r *Repo) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.DB.WithContext(ctx).Create(product).Error
}

func (r *Repo) ProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *Repo) ListInStock(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).
		Where("stock_count > 0").
		Order("id ASC").
		Find(&products).Error
	return products, err
}

// SearchByName is a case-insensitive substring match, the database
// fallback for the Elasticsearch path.
func (r *Repo) SearchByName(ctx context.Context, substring string) ([]models.Product, error) {
	var products []models.Product
	err := r.DB.WithContext(ctx).
		Raw("SELECT * FROM products WHERE lower(name) LIKE lower(?) ORDER BY id ASC",
			"%"+substring+"%").
		Scan(&products).Error
	return products, err
}

// IncrementStock adds exactly one unit.
func (r *Repo) IncrementStock(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).
		Exec("UPDATE products SET stock_count = stock_count + 1 WHERE id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock moves stock_count by -delta with a floor check for
// positive deltas, so stock never goes negative. Reports whether the
// update applied.
func (r *Repo) AdjustStock(ctx context.Context, id uint, delta int) (bool, error) {
	var res *gorm.DB
	if delta > 0 {
		res = r.DB.WithContext(ctx).
			Exec("UPDATE products SET stock_count = stock_count - ? WHERE id = ? AND stock_count >= ?",
				delta, id, delta)
	} else {
		res = r.DB.WithContext(ctx).
			Exec("UPDATE products SET stock_count = stock_count - ? WHERE id = ?", delta, id)
	}
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repo) SetProductImage(ctx context.Context, id uint, filename string) error {
	res := r.DB.WithContext(ctx).
		Exec("UPDATE products SET product_image = ? WHERE id = ?", filename, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

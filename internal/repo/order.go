package repo

import (
	"context"

	"github.com/tablegames/shop/internal/models"
)

// OrderLine is one line item joined with its product.
type OrderLine struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	ProductImage string  `json:"product_image"`
	ProductCount int     `json:"product_count"`
	ProductPrice float64 `json:"product_price"`
	UserName     string  `json:"user,omitempty"`
}

func (r *Repo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *Repo) CreateOrderProducts(ctx context.Context, lines []models.OrderProduct) error {
	return r.DB.WithContext(ctx).Create(&lines).Error
}

func (r *Repo) OrderByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &order, nil
}

func (r *Repo) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).
		Exec("UPDATE orders SET status = ? WHERE id = ?", status, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) OrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *Repo) AllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&orders).Error
	return orders, err
}

func (r *Repo) OrderLines(ctx context.Context, orderID uint) ([]OrderLine, error) {
	var lines []OrderLine
	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS product_name, p.product_image,
		       op.count AS product_count, p.price AS product_price
		FROM order_products AS op
		INNER JOIN products AS p ON p.id = op.product_id
		WHERE op.order_id = ?
		ORDER BY op.id`, orderID).
		Scan(&lines).Error
	return lines, err
}

// OrderLinesWithUser is the admin view: line items plus the purchaser
// name pulled in over orders → users.
func (r *Repo) OrderLinesWithUser(ctx context.Context, orderID uint) ([]OrderLine, error) {
	var lines []OrderLine
	err := r.DB.WithContext(ctx).Raw(`
		SELECT p.id AS product_id, p.name AS product_name, p.product_image,
		       op.count AS product_count, p.price AS product_price,
		       u.first_name || ' ' || u.last_name AS user_name
		FROM order_products AS op
		INNER JOIN products AS p ON p.id = op.product_id
		INNER JOIN orders AS o ON o.id = op.order_id
		INNER JOIN users AS u ON u.id = o.user_id
		WHERE op.order_id = ?
		ORDER BY op.id`, orderID).
		Scan(&lines).Error
	return lines, err
}

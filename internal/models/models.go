package models

import (
	"time"
)

type Product struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"not null"   json:"name"`
	Price        float64 `gorm:"not null"   json:"price"`
	StockCount   int     `gorm:"not null"   json:"stock_count"`
	Publisher    string  `json:"publisher"`
	ProductImage string  `json:"product_image"`
}

type User struct {
	ID           uint      `gorm:"primaryKey"      json:"id"`
	Admin        bool      `gorm:"not null"        json:"admin"`
	Login        string    `gorm:"unique;not null" json:"login"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `gorm:"not null"        json:"-"`
	RegDate      time.Time `gorm:"not null"        json:"reg_date"`
}

// Token is an opaque bearer credential. Rows live until logout, a user
// may hold several at once.
type Token struct {
	ID     uint   `gorm:"primaryKey"      json:"id"`
	UserID uint   `gorm:"index;not null"  json:"user_id"`
	Token  string `gorm:"unique;not null" json:"token"`
}

// CartItem is one pre-order cart line, one row per (user, product).
// A row with count 0 must not exist.
type CartItem struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	ProductID uint `gorm:"not null"       json:"product_id"`
	UserID    uint `gorm:"index;not null" json:"user_id"`
	Count     int  `gorm:"not null"       json:"count"`
}

type Order struct {
	ID      uint    `gorm:"primaryKey"     json:"id"`
	UserID  uint    `gorm:"index;not null" json:"user_id"`
	Address string  `json:"address"`
	Amount  float64 `json:"amount"`
	Status  string  `gorm:"not null"       json:"status"`
	Comment string  `json:"comment"`
}

// OrderProduct is an immutable order line item.
type OrderProduct struct {
	ID        uint `gorm:"primaryKey"     json:"id"`
	ProductID uint `gorm:"not null"       json:"product_id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	Count     int  `gorm:"not null"       json:"count"`
}

// Order status values. Transition rules live in the order service.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

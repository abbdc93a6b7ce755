package db

import (
	"fmt"

	"gorm.io/gorm"
)

// The schema is defined here as plain DDL instead of being derived from
// the model structs, so every column, constraint and foreign key is
// spelled out once. Two variants because the autoincrement syntax
// differs between postgres and sqlite.

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		price         DOUBLE PRECISION NOT NULL DEFAULT 0,
		stock_count   BIGINT NOT NULL DEFAULT 0,
		publisher     TEXT NOT NULL DEFAULT '',
		product_image TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		admin         BOOLEAN NOT NULL DEFAULT FALSE,
		login         TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		reg_date      TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tokens (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		token   TEXT NOT NULL UNIQUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tokens_user_id ON tokens (user_id)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL,
		user_id    BIGINT NOT NULL,
		count      BIGINT NOT NULL,
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		address TEXT NOT NULL DEFAULT '',
		amount  DOUBLE PRECISION NOT NULL DEFAULT 0,
		status  TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id)`,
	`CREATE TABLE IF NOT EXISTS order_products (
		id         BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products (id),
		order_id   BIGINT NOT NULL REFERENCES orders (id),
		count      BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_products_order_id ON order_products (order_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		price         REAL NOT NULL DEFAULT 0,
		stock_count   INTEGER NOT NULL DEFAULT 0,
		publisher     TEXT NOT NULL DEFAULT '',
		product_image TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		admin         BOOLEAN NOT NULL DEFAULT FALSE,
		login         TEXT NOT NULL UNIQUE,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		reg_date      TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tokens (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id),
		token   TEXT NOT NULL UNIQUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tokens_user_id ON tokens (user_id)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL,
		user_id    INTEGER NOT NULL,
		count      INTEGER NOT NULL,
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES users (id),
		address TEXT NOT NULL DEFAULT '',
		amount  REAL NOT NULL DEFAULT 0,
		status  TEXT NOT NULL,
		comment TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders (user_id)`,
	`CREATE TABLE IF NOT EXISTS order_products (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		product_id INTEGER NOT NULL REFERENCES products (id),
		order_id   INTEGER NOT NULL REFERENCES orders (id),
		count      INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_order_products_order_id ON order_products (order_id)`,
}

func Migrate(db *gorm.DB) error {
	schema := sqliteSchema
	if db.Dialector.Name() == "postgres" {
		schema = postgresSchema
	}

	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

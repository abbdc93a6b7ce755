package service_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tablegames/shop/internal/db"
	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.Repo {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection, otherwise every pooled conn gets its own :memory: db
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return repo.New(gdb)
}

func createUser(t *testing.T, r *repo.Repo, login string, admin bool) *models.User {
	t.Helper()
	user := &models.User{Admin: admin, Login: login, PasswordHash: "x"}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func createProduct(t *testing.T, r *repo.Repo, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Price: price, StockCount: stock, Publisher: "test"}
	require.NoError(t, r.CreateProduct(context.Background(), product))
	return product
}

func countRows(t *testing.T, r *repo.Repo, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, r.DB.Raw("SELECT count(*) FROM "+table).Scan(&n).Error)
	return n
}

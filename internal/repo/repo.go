package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

// Repo is a thin layer of typed query functions over the shop schema.
// Relationships are always explicit joins issued here, never ORM-level
// back-references.
type Repo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Repo {
	return &Repo{DB: db}
}

// Atomic runs fn inside one database transaction. The Repo handed to fn
// is scoped to that transaction.
func (r *Repo) Atomic(ctx context.Context, fn func(r *Repo) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repo{DB: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// duplicate relies on the dialector's error translation (TranslateError
// in the gorm config), which maps unique violations on both postgres
// and sqlite to gorm.ErrDuplicatedKey.
func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

package repo

import (
	"context"

	"github.com/tablegames/shop/internal/models"
)

// CreateUser inserts the user. A login already held by another user
// comes back as ErrDuplicate, enforced by the unique index rather than
// a racy lookup beforehand.
func (r *Repo) CreateUser(ctx context.Context, user *models.User) error {
	return duplicate(r.DB.WithContext(ctx).Create(user).Error)
}

func (r *Repo) UserByLogin(ctx context.Context, login string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("login = ?", login).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *Repo) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *Repo) UpdateUserName(ctx context.Context, id uint, firstName, lastName string) error {
	res := r.DB.WithContext(ctx).
		Exec("UPDATE users SET first_name = ?, last_name = ? WHERE id = ?", firstName, lastName, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

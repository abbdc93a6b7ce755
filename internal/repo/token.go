package repo

import (
	"context"

	"github.com/tablegames/shop/internal/models"
)

func (r *Repo) CreateToken(ctx context.Context, token *models.Token) error {
	return r.DB.WithContext(ctx).Create(token).Error
}

func (r *Repo) TokenByValue(ctx context.Context, raw string) (*models.Token, error) {
	var token models.Token
	if err := r.DB.WithContext(ctx).Where("token = ?", raw).First(&token).Error; err != nil {
		return nil, notFound(err)
	}
	return &token, nil
}

// DeleteToken removes every row holding the given token string and
// reports how many were removed.
func (r *Repo) DeleteToken(ctx context.Context, raw string) (int64, error) {
	res := r.DB.WithContext(ctx).Where("token = ?", raw).Delete(&models.Token{})
	return res.RowsAffected, res.Error
}

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/repo"
)

const (
	bearerPrefix = "Bearer "
	tokenBytes   = 24
)

// TokenService issues and checks the opaque bearer tokens stored in the
// tokens table. Tokens have no expiry, they live until logout.
type TokenService struct {
	Repo *repo.Repo
}

func (s *TokenService) Issue(ctx context.Context, userID uint) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	raw := base64.RawURLEncoding.EncodeToString(buf)

	if err := s.Repo.CreateToken(ctx, &models.Token{UserID: userID, Token: raw}); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}
	return raw, nil
}

// Validate resolves an Authorization header to its user.
func (s *TokenService) Validate(ctx context.Context, header string) (*models.User, error) {
	raw, err := StripBearer(header)
	if err != nil {
		return nil, err
	}

	token, err := s.Repo.TokenByValue(ctx, raw)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown token", ErrUnauthorized)
		}
		return nil, err
	}

	user, err := s.Repo.UserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: token owner missing", ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// Revoke deletes every row matching the token. Revoking a token that was
// never issued is a permission error, mirroring the logout endpoint.
func (s *TokenService) Revoke(ctx context.Context, raw string) error {
	deleted, err := s.Repo.DeleteToken(ctx, raw)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: token not found", ErrPermission)
	}
	return nil
}

// StripBearer extracts the raw token from an Authorization header.
func StripBearer(header string) (string, error) {
	if header == "" {
		return "", fmt.Errorf("%w: no token", ErrUnauthorized)
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", fmt.Errorf("%w: malformed authorization header", ErrUnauthorized)
	}
	return header[len(bearerPrefix):], nil
}

package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tablegames/shop/internal/service"
)

func TestIssueToken(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.TokenService{Repo: r}
	user := createUser(t, r, "alice", false)

	ctx := context.Background()
	first, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)

	// 24 random bytes come out as 32 url-safe characters
	require.GreaterOrEqual(t, len(first), 32)
	require.NotEqual(t, first, second)

	got, err := svc.Validate(ctx, "Bearer "+first)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	// both tokens stay live at once
	got, err = svc.Validate(ctx, "Bearer "+second)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
}

func TestValidateRejects(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.TokenService{Repo: r}
	ctx := context.Background()

	_, err := svc.Validate(ctx, "")
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = svc.Validate(ctx, "Token abcdef")
	require.ErrorIs(t, err, service.ErrUnauthorized)

	_, err = svc.Validate(ctx, "Bearer never-issued")
	require.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestRevokeToken(t *testing.T) {
	r := newTestRepo(t)
	svc := &service.TokenService{Repo: r}
	user := createUser(t, r, "bob", false)

	ctx := context.Background()
	token, err := svc.Issue(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, token))

	_, err = svc.Validate(ctx, "Bearer "+token)
	require.ErrorIs(t, err, service.ErrUnauthorized)

	// revoking twice reports the missing row
	require.ErrorIs(t, svc.Revoke(ctx, token), service.ErrPermission)
}

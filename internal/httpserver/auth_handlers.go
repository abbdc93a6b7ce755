package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablegames/shop/internal/hash"
	"github.com/tablegames/shop/internal/logging"
	"github.com/tablegames/shop/internal/models"
	"github.com/tablegames/shop/internal/mykafka"
	"github.com/tablegames/shop/internal/repo"
	"github.com/tablegames/shop/internal/service"
)

type AuthHandler struct {
	Repo     *repo.Repo
	Tokens   *service.TokenService
	Producer *mykafka.Producer
}

func (h *AuthHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "user_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Login     string `json:"login"`
		Password  string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", service.ErrValidation))
	}
	if req.Login == "" || req.Password == "" {
		return fail(c, fmt.Errorf("%w: login and password required", service.ErrValidation))
	}

	ctx := c.Request().Context()
	passwordHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return fail(c, err)
	}

	user := models.User{
		Admin:        false,
		Login:        req.Login,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		RegDate:      time.Now().UTC(),
	}
	// the unique index on login is the source of truth, a lookup first
	// would race with a concurrent registration
	if err := h.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return fail(c, fmt.Errorf("%w: the user already exists", service.ErrConflict))
		}
		return fail(c, err)
	}

	h.publish(c, map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"login":   user.Login,
	})

	return message(c, http.StatusOK, "user was created successfully")
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req struct {
		Login    string `json:"login"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", service.ErrValidation))
	}

	ctx := c.Request().Context()
	user, err := h.Repo.UserByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fail(c, fmt.Errorf("%w: not authorized", service.ErrUnauthorized))
		}
		return fail(c, err)
	}
	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return fail(c, fmt.Errorf("%w: not authorized", service.ErrUnauthorized))
	}

	token, err := h.Tokens.Issue(ctx, user.ID)
	if err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"login":   user.Login,
	})

	return respond(c, http.StatusOK, echo.Map{"message": "success", "token": token})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	raw, err := service.StripBearer(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		return fail(c, err)
	}

	if err := h.Tokens.Revoke(c.Request().Context(), raw); err != nil {
		return fail(c, err)
	}

	user := currentUser(c)
	h.publish(c, map[string]any{
		"type":    "user_logged_out",
		"user_id": user.ID,
		"login":   user.Login,
	})

	return message(c, http.StatusOK, "success")
}

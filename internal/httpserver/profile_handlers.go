package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablegames/shop/internal/repo"
	"github.com/tablegames/shop/internal/service"
)

type ProfileHandler struct {
	Repo   *repo.Repo
	Orders *service.OrderService
}

// profileInfo is the user without id and credentials.
type profileInfo struct {
	Admin     bool      `json:"admin"`
	Login     string    `json:"login"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	RegDate   time.Time `json:"reg_date"`
}

func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user := currentUser(c)

	orders, err := h.Orders.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return fail(c, err)
	}

	return respond(c, http.StatusOK, echo.Map{
		"profile": profileInfo{
			Admin:     user.Admin,
			Login:     user.Login,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			RegDate:   user.RegDate,
		},
		"orders": orders,
	})
}

func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: body is null", service.ErrValidation))
	}

	user := currentUser(c)
	if err := h.Repo.UpdateUserName(c.Request().Context(), user.ID, req.FirstName, req.LastName); err != nil {
		return fail(c, err)
	}

	return message(c, http.StatusOK, "success")
}

package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tablegames/shop/internal/logging"
	"github.com/tablegames/shop/internal/mykafka"
	"github.com/tablegames/shop/internal/service"
)

type CartHandler struct {
	Cart     *service.CartService
	Producer *mykafka.Producer
}

func (h *CartHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "cart_events", fmt.Sprint(event["user_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	rows, err := h.Cart.View(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"products_cart": rows})
}

// AddToCart merges a signed count into the user's cart line. A negative
// count returns stock; a merge landing on 0 removes the line.
func (h *CartHandler) AddToCart(c echo.Context) error {
	var req struct {
		ProductID uint `json:"product_id"`
		Count     int  `json:"count"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: body is null", service.ErrValidation))
	}

	user := currentUser(c)
	item, err := h.Cart.Add(c.Request().Context(), user.ID, req.ProductID, req.Count)
	if err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{
		"type":       "cart_item_merged",
		"user_id":    user.ID,
		"product_id": req.ProductID,
		"count":      req.Count,
	})

	if item == nil {
		return message(c, http.StatusOK, "success")
	}
	return respond(c, http.StatusOK, echo.Map{"message": "success", "item": item})
}

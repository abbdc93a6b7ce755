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

type OrderHandler struct {
	Orders   *service.OrderService
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["order_id"]), event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka_publish_failed", "error", err)
	}
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req struct {
		Address  string               `json:"address"`
		Amount   float64              `json:"amount"`
		Comment  string               `json:"comment"`
		Products []service.PlacedItem `json:"products"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", service.ErrValidation))
	}

	user := currentUser(c)
	order, lines, err := h.Orders.Place(c.Request().Context(), user.ID, req.Address, req.Amount, req.Comment, req.Products)
	if err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  user.ID,
		"items":    len(lines),
	})

	return respond(c, http.StatusOK, echo.Map{"message": "success", "order_id": order.ID})
}

func (h *OrderHandler) SetStatus(c echo.Context) error {
	var req struct {
		OrderID uint   `json:"order_id"`
		Status  string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return fail(c, fmt.Errorf("%w: invalid body", service.ErrValidation))
	}
	if req.OrderID == 0 || req.Status == "" {
		return fail(c, fmt.Errorf("%w: order_id and status required", service.ErrValidation))
	}

	if err := h.Orders.SetStatus(c.Request().Context(), req.OrderID, req.Status); err != nil {
		return fail(c, err)
	}

	h.publish(c, map[string]any{
		"type":     "order_status_changed",
		"order_id": req.OrderID,
		"status":   req.Status,
	})

	return message(c, http.StatusOK, "success")
}

// AdminOrders is the all-users report. The route is admin-gated.
func (h *OrderHandler) AdminOrders(c echo.Context) error {
	views, err := h.Orders.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, echo.Map{"orders": views})
}

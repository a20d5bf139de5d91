package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

type OrderHandler struct {
	checkoutService *service.CheckoutService
	orderService    *service.OrderService
}

func NewOrderHandler(checkoutService *service.CheckoutService, orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{checkoutService: checkoutService, orderService: orderService}
}

// CreateOrder converts the user's cart into an order --> POST /order
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req service.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	order, err := h.checkoutService.PlaceOrder(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(200, map[string]interface{}{
		"message": "Order created successfully, cart cleared",
		"order":   order,
	})
}

// ListOrders returns the user's order history --> POST /orders/list
func (h *OrderHandler) ListOrders(c echo.Context) error {
	req := struct {
		UserID string `json:"userId"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]interface{}{"orders": orders})
}

package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddToCart adds a product variant to the user's cart --> POST /cart/add
func (h *CartHandler) AddToCart(c echo.Context) error {
	req := struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Color     string `json:"color"`
		Size      string `json:"size"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	item, created, err := h.cartService.AddItem(c.Request().Context(), req.UserID, req.ProductID, req.Quantity, req.Color, req.Size)
	if err != nil {
		return respondError(c, err)
	}

	if created {
		return c.JSON(201, map[string]interface{}{"message": "New product added to cart", "data": item})
	}
	return c.JSON(200, map[string]interface{}{"message": "Cart item updated with new quantity", "data": item})
}

// ListCart returns the user's cart with product summaries --> POST /cart/list
func (h *CartHandler) ListCart(c echo.Context) error {
	req := struct {
		UserID string `json:"userId"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	items, err := h.cartService.ListItems(c.Request().Context(), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]interface{}{"data": items})
}

// RemoveFromCart deletes a product's line items --> POST /cart/remove
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	req := struct {
		UserID    string `json:"userId"`
		ProductID string `json:"productId"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	if err := h.cartService.RemoveItem(c.Request().Context(), req.UserID, req.ProductID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]string{"message": "Item removed from cart"})
}

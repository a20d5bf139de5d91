package api

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

type ProductHandler struct {
	catalogService *service.CatalogService
}

func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GetProducts returns the whole catalog --> GET /products
func (h *ProductHandler) GetProducts(c echo.Context) error {
	products, err := h.catalogService.GetProducts(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, products)
}

// GetProductByID returns one product --> GET /products/:id
func (h *ProductHandler) GetProductByID(c echo.Context) error {
	product, err := h.catalogService.GetProductByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, product)
}

// GetProductsByCategory returns products in a category --> POST /products/category
func (h *ProductHandler) GetProductsByCategory(c echo.Context) error {
	req := struct {
		Category string `json:"category"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	products, err := h.catalogService.GetProductsByCategory(c.Request().Context(), req.Category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]interface{}{"products": products})
}

// SearchProducts runs a paginated catalog search --> GET /search/products
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	query := c.QueryParam("q")
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.catalogService.Search(c.Request().Context(), query, page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, result)
}

// Autocomplete backs the search dropdown --> GET /search/autocomplete
func (h *ProductHandler) Autocomplete(c echo.Context) error {
	result, err := h.catalogService.Autocomplete(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, result)
}

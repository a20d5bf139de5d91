package api

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register creates a new user --> POST /users/register
func (h *UserHandler) Register(c echo.Context) error {
	req := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	user, err := h.userService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(201, user)
}

// Login issues a session token --> POST /users/login
func (h *UserHandler) Login(c echo.Context) error {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	token, err := h.userService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return c.JSON(401, map[string]string{"message": "Invalid email or password"})
	}
	return c.JSON(200, map[string]string{"token": token})
}

// Me returns the authenticated user --> GET /users/me (echo-jwt protected)
func (h *UserHandler) Me(c echo.Context) error {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return c.JSON(401, map[string]string{"message": "Unauthorized"})
	}
	claims, ok := token.Claims.(*service.JwtCustomClaims)
	if !ok {
		return c.JSON(401, map[string]string{"message": "Unauthorized"})
	}

	user, err := h.userService.GetUser(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, user)
}

package api

import (
	"github.com/labstack/echo/v4"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

type ContactHandler struct {
	mailer service.Mailer
}

func NewContactHandler(mailer service.Mailer) *ContactHandler {
	return &ContactHandler{mailer: mailer}
}

// Contact forwards a contact-form submission over SMTP --> POST /contact
func (h *ContactHandler) Contact(c echo.Context) error {
	var msg service.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	if err := h.mailer.SendContact(msg); err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]bool{"success": true})
}

package api

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

// signatureHeader carries the gateway's HMAC over the raw webhook body.
const signatureHeader = "X-Razorpay-Signature"

type WebhookHandler struct {
	paymentService *service.PaymentService
}

func NewWebhookHandler(paymentService *service.PaymentService) *WebhookHandler {
	return &WebhookHandler{paymentService: paymentService}
}

// PaymentWebhook finalizes an order from a gateway callback --> POST /payment/webhook
func (h *WebhookHandler) PaymentWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(400, map[string]string{"message": "Invalid request payload"})
	}

	signature := c.Request().Header.Get(signatureHeader)
	if err := h.paymentService.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return respondError(c, err)
	}
	return c.JSON(200, map[string]string{"status": "ok"})
}

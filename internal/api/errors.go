package api

import (
	"errors"
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// respondError is the single place the error taxonomy maps to HTTP status
// codes. Internal failures are logged here and surface as a generic message.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		return c.JSON(400, map[string]string{"message": userMessage(err)})
	case errors.Is(err, apperr.ErrEmptyCart):
		return c.JSON(404, map[string]string{"message": "Cart is empty"})
	case errors.Is(err, apperr.ErrNotFound):
		return c.JSON(404, map[string]string{"message": userMessage(err)})
	case errors.Is(err, apperr.ErrDuplicate):
		return c.JSON(409, map[string]string{"message": userMessage(err)})
	default:
		logger.Error().Err(err).Str("path", c.Path()).Msg("Request failed")
		return c.JSON(500, map[string]string{"message": "An error occurred while processing your request"})
	}
}

// userMessage strips the taxonomy sentinel prefix, leaving the human text.
func userMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{apperr.ErrInvalidInput, apperr.ErrNotFound, apperr.ErrEmptyCart, apperr.ErrDuplicate} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}

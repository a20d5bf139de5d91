package consumer

import (
	"context"
	"encoding/json"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Consumer reads order lifecycle events from the order topic and sends the
// customer-facing notifications, keeping email off the checkout hot path.
type Consumer struct {
	reader *kafka.Reader
	mailer service.Mailer
}

func NewConsumer(reader *kafka.Reader, mailer service.Mailer) *Consumer {
	return &Consumer{reader: reader, mailer: mailer}
}

// Start consumes until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error().Err(err).Msg("Error reading order event")
			continue
		}
		c.processMessage(msg)
	}
}

func (c *Consumer) processMessage(msg kafka.Message) {
	// key -> "order.paid.<orderID>" etc.
	parts := strings.Split(string(msg.Key), ".")
	if len(parts) < 3 {
		logger.Error().Msgf("Malformed event key %q", string(msg.Key))
		return
	}
	eventType := parts[1]

	var event service.OrderEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		logger.Error().Err(err).Msg("Error unmarshalling order event")
		return
	}

	switch eventType {
	case "paid":
		if event.Email == "" {
			logger.Warn().Msgf("No email on paid event for order %s", event.Order.ID)
			return
		}
		if err := c.mailer.SendOrderConfirmation(event.Email, &event.Order); err != nil {
			logger.Error().Err(err).Msgf("Error sending confirmation for order %s", event.Order.ID)
		}
	case "created", "cancelled":
		// No customer notification for these yet.
	default:
		logger.Warn().Msgf("Unknown order event type %q", eventType)
	}
}

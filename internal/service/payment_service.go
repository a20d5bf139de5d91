package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

const (
	eventPaymentCaptured = "payment.captured"
	eventPaymentFailed   = "payment.failed"
)

// WebhookEvent is the gateway's server-to-server payment notification.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// PaymentService finalizes orders from verified gateway webhooks and expires
// orders whose payment never arrived.
type PaymentService struct {
	orderRepo OrderStore
	userRepo  UserStore
	gateway   PaymentGateway
	events    EventPublisher
	timeout   time.Duration
}

func NewPaymentService(orderRepo OrderStore, userRepo UserStore, gateway PaymentGateway, events EventPublisher, timeout time.Duration) *PaymentService {
	return &PaymentService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		gateway:   gateway,
		events:    events,
		timeout:   timeout,
	}
}

// HandleWebhook verifies the signature and applies the payment outcome to
// the referenced order. Re-delivery of an already-applied event is a no-op.
// Payment success is written onto the order's status; nothing here touches
// addresses or carts.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !s.gateway.VerifyWebhook(payload, signature) {
		return fmt.Errorf("%w: invalid webhook signature", apperr.ErrInvalidInput)
	}

	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("%w: malformed webhook payload", apperr.ErrInvalidInput)
	}
	intentID := event.Payload.Payment.Entity.OrderID
	if intentID == "" {
		return fmt.Errorf("%w: webhook carries no order reference", apperr.ErrInvalidInput)
	}

	order, err := s.orderRepo.GetOrderByPaymentIntent(ctx, intentID)
	if err != nil {
		if isMissingRecord(err) {
			return fmt.Errorf("%w: no order for payment intent %s", apperr.ErrNotFound, intentID)
		}
		logger.Error().Err(err).Msgf("Error loading order for intent %s", intentID)
		return err
	}

	switch event.Event {
	case eventPaymentCaptured:
		return s.transition(ctx, order, entity.StatusPending, "paid")
	case eventPaymentFailed:
		return s.transition(ctx, order, entity.StatusCancelled, "cancelled")
	default:
		logger.Warn().Msgf("Ignoring unknown webhook event %q", event.Event)
		return nil
	}
}

func (s *PaymentService) transition(ctx context.Context, order *entity.Order, to entity.OrderStatus, eventType string) error {
	if !entity.StatusPendingPayment.CanTransition(to) {
		return fmt.Errorf("cannot move order %s to %s", order.ID, to)
	}
	moved, err := s.orderRepo.UpdateOrderStatus(ctx, order.ID, entity.StatusPendingPayment, to)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating order %s", order.ID)
		return err
	}
	if !moved {
		// Already finalized by an earlier delivery.
		return nil
	}
	order.Status = to
	s.publishOrderEvent(ctx, eventType, order)
	return nil
}

// ExpireStale cancels orders still awaiting payment past the configured
// timeout. Returns how many orders were cancelled.
func (s *PaymentService) ExpireStale(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.timeout)
	orders, err := s.orderRepo.ListExpiredPendingPayment(ctx, cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing expired orders")
		return 0, err
	}

	expired := 0
	for i := range orders {
		moved, err := s.orderRepo.UpdateOrderStatus(ctx, orders[i].ID, entity.StatusPendingPayment, entity.StatusCancelled)
		if err != nil {
			logger.Error().Err(err).Msgf("Error cancelling expired order %s", orders[i].ID)
			continue
		}
		if moved {
			expired++
			orders[i].Status = entity.StatusCancelled
			s.publishOrderEvent(ctx, "cancelled", &orders[i])
		}
	}
	return expired, nil
}

// RunExpiry drives ExpireStale on a fixed interval until the context ends.
func (s *PaymentService) RunExpiry(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.ExpireStale(ctx); err == nil && n > 0 {
				logger.Info().Msgf("Cancelled %d unpaid orders", n)
			}
		}
	}
}

func (s *PaymentService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	email := ""
	if user, err := s.userRepo.GetUserByID(ctx, order.UserID); err == nil {
		email = user.Email
	}
	payload, err := json.Marshal(OrderEvent{Type: eventType, Order: *order, Email: email})
	if err != nil {
		logger.Error().Err(err).Msg("Error marshalling order event")
		return
	}
	key := fmt.Sprintf("order.%s.%s", eventType, order.ID)
	if err := s.events.Publish(ctx, key, payload); err != nil {
		logger.Error().Err(err).Msgf("Error publishing order event %s", key)
	}
}

package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

func newPaymentFixture(valid bool, timeout time.Duration) (*PaymentService, *fakeOrderStore, *fakePublisher, *entity.Order) {
	user := testUser()
	orders := newFakeOrderStore(nil)
	order := &entity.Order{
		ID:              objectid.New(),
		OrderNumber:     NewOrderNumber(),
		UserID:          user.ID,
		Status:          entity.StatusPendingPayment,
		PaymentIntentID: "pay_intent_1",
		CreatedAt:       time.Now(),
	}
	orders.orders[order.ID] = order
	publisher := &fakePublisher{}
	svc := NewPaymentService(orders, newFakeUserStore(user), &fakeGateway{valid: valid}, publisher, timeout)
	return svc, orders, publisher, order
}

func capturedPayload(intentID string) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_x","order_id":%q}}}}`, intentID))
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc, orders, publisher, order := newPaymentFixture(false, time.Hour)

	err := svc.HandleWebhook(context.Background(), capturedPayload(order.PaymentIntentID), "forged")
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Equal(t, entity.StatusPendingPayment, orders.orders[order.ID].Status)
	assert.Empty(t, publisher.events)
}

func TestHandleWebhookCapturedMovesOrderToPending(t *testing.T) {
	svc, orders, publisher, order := newPaymentFixture(true, time.Hour)

	err := svc.HandleWebhook(context.Background(), capturedPayload(order.PaymentIntentID), "sig")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, orders.orders[order.ID].Status)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "order.paid."+order.ID, publisher.events[0].key)
}

func TestHandleWebhookRedeliveryIsNoOp(t *testing.T) {
	svc, orders, publisher, order := newPaymentFixture(true, time.Hour)
	ctx := context.Background()

	require.NoError(t, svc.HandleWebhook(ctx, capturedPayload(order.PaymentIntentID), "sig"))
	require.NoError(t, svc.HandleWebhook(ctx, capturedPayload(order.PaymentIntentID), "sig"))

	assert.Equal(t, entity.StatusPending, orders.orders[order.ID].Status)
	assert.Len(t, publisher.events, 1, "re-delivery must not publish a second event")
}

func TestHandleWebhookFailedCancelsOrder(t *testing.T) {
	svc, orders, publisher, order := newPaymentFixture(true, time.Hour)

	payload := []byte(fmt.Sprintf(
		`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_x","order_id":%q}}}}`,
		order.PaymentIntentID))
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))
	assert.Equal(t, entity.StatusCancelled, orders.orders[order.ID].Status)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "order.cancelled."+order.ID, publisher.events[0].key)
}

func TestHandleWebhookUnknownEventIgnored(t *testing.T) {
	svc, orders, publisher, order := newPaymentFixture(true, time.Hour)

	payload := []byte(fmt.Sprintf(
		`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_x","order_id":%q}}}}`,
		order.PaymentIntentID))
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, "sig"))
	assert.Equal(t, entity.StatusPendingPayment, orders.orders[order.ID].Status)
	assert.Empty(t, publisher.events)
}

func TestHandleWebhookUnknownIntent(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(true, time.Hour)

	err := svc.HandleWebhook(context.Background(), capturedPayload("pay_missing"), "sig")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestHandleWebhookMissingOrderReference(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(true, time.Hour)

	payload := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_x"}}}}`)
	err := svc.HandleWebhook(context.Background(), payload, "sig")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestExpireStaleCancelsOnlyTimedOutOrders(t *testing.T) {
	svc, orders, publisher, stale := newPaymentFixture(true, 30*time.Minute)
	stale.CreatedAt = time.Now().Add(-time.Hour)

	fresh := &entity.Order{
		ID:              objectid.New(),
		UserID:          stale.UserID,
		Status:          entity.StatusPendingPayment,
		PaymentIntentID: "pay_intent_2",
		CreatedAt:       time.Now(),
	}
	paid := &entity.Order{
		ID:        objectid.New(),
		UserID:    stale.UserID,
		Status:    entity.StatusPending,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	orders.orders[fresh.ID] = fresh
	orders.orders[paid.ID] = paid

	n, err := svc.ExpireStale(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, entity.StatusCancelled, orders.orders[stale.ID].Status)
	assert.Equal(t, entity.StatusPendingPayment, orders.orders[fresh.ID].Status)
	assert.Equal(t, entity.StatusPending, orders.orders[paid.ID].Status)
	require.Len(t, publisher.events, 1)
	assert.Equal(t, "order.cancelled."+stale.ID, publisher.events[0].key)
}

func TestRazorpayWebhookSignature(t *testing.T) {
	gateway := NewRazorpayGateway("https://api.razorpay.com/v1", "key", "whsec")
	payload := []byte(`{"event":"payment.captured"}`)

	mac := hmac.New(sha256.New, []byte("whsec"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, gateway.VerifyWebhook(payload, signature))
	assert.False(t, gateway.VerifyWebhook(payload, "deadbeef"))
	assert.False(t, gateway.VerifyWebhook([]byte(`{"event":"tampered"}`), signature))
}

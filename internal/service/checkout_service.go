package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dhruvp132/Dhyan-ecom/internal/apperr"
	"github.com/Dhruvp132/Dhyan-ecom/internal/cache"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

const paymentMethodLabel = "Razorpay"

// PlaceOrderRequest is the shipping form submitted at checkout. Every field
// is required.
type PlaceOrderRequest struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
}

// OrderEvent is the payload published to the order topic. The user's email
// rides along so the notification consumer does not need a database read.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order entity.Order `json:"order"`
	Email string       `json:"email"`
}

// CheckoutService converts a user's cart into a durable order: validates the
// shipping form, computes the total from current catalog prices, creates the
// payment intent, and persists address + order + cart clearing as one
// transaction.
type CheckoutService struct {
	userRepo    UserStore
	cartRepo    CartStore
	productRepo ProductStore
	orderRepo   OrderStore
	guard       cache.Cache
	gateway     PaymentGateway
	events      EventPublisher
}

func NewCheckoutService(userRepo UserStore, cartRepo CartStore, productRepo ProductStore, orderRepo OrderStore, guard cache.Cache, gateway PaymentGateway, events EventPublisher) *CheckoutService {
	return &CheckoutService{
		userRepo:    userRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		guard:       guard,
		gateway:     gateway,
		events:      events,
	}
}

// PlaceOrder runs the checkout pipeline for one shipping-form submission.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*entity.Order, error) {
	if missing := missingFields(req); len(missing) > 0 {
		return nil, fmt.Errorf("%w: All fields are required. Missing: %s",
			apperr.ErrInvalidInput, strings.Join(missing, ", "))
	}
	if !objectid.IsValid(req.UserID) {
		return nil, fmt.Errorf("%w: invalid user ID format. Please log out and log back in", apperr.ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		if isMissingRecord(err) {
			return nil, fmt.Errorf("%w: user does not exist", apperr.ErrNotFound)
		}
		logger.Error().Err(err).Msgf("Error loading user %s", req.UserID)
		return nil, err
	}

	items, err := s.cartRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading cart for user %s", req.UserID)
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.ErrEmptyCart
	}

	// One cart snapshot converts to at most one order: a concurrent
	// submission of the same cart loses the SETNX race and is rejected
	// before any write happens.
	idemKey := checkoutKey(req.UserID, items)
	acquired, err := s.guard.SetNX(ctx, idemKey, "placed", 24*time.Hour)
	if err != nil {
		logger.Error().Err(err).Msg("Error acquiring checkout idempotency key")
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: an identical checkout is already in progress", apperr.ErrDuplicate)
	}

	order, err := s.buildAndPersist(ctx, req, items)
	if err != nil {
		// Release the guard so a retry after a genuine failure is possible.
		if delErr := s.guard.Delete(ctx, idemKey); delErr != nil {
			logger.Error().Err(delErr).Msg("Error releasing checkout idempotency key")
		}
		return nil, err
	}

	s.publishOrderEvent(ctx, "created", order, user.Email)
	return order, nil
}

func (s *CheckoutService) buildAndPersist(ctx context.Context, req PlaceOrderRequest, items []entity.CartItem) (*entity.Order, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetProductsByIDs(ctx, ids)
	if err != nil {
		logger.Error().Err(err).Msg("Error loading products for checkout")
		return nil, err
	}

	// The total is computed from the catalog's current prices, never taken
	// from the client.
	total := decimal.Zero
	orderID := objectid.New()
	orderItems := make([]entity.OrderItem, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s no longer exists", apperr.ErrNotFound, item.ProductID)
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		orderItems = append(orderItems, entity.OrderItem{
			ID:        objectid.New(),
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Color:     item.Color,
			Size:      item.Size,
		})
	}

	orderNumber := NewOrderNumber()
	intentID, err := s.gateway.CreateIntent(ctx, total, orderNumber)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating payment intent")
		return nil, err
	}

	address := &entity.Address{
		ID:        objectid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
		UserID:    req.UserID,
	}
	order := &entity.Order{
		ID:              orderID,
		OrderNumber:     orderNumber,
		TotalAmount:     total,
		UserID:          req.UserID,
		Status:          entity.StatusPendingPayment,
		PaymentMethod:   paymentMethodLabel,
		PaymentIntentID: intentID,
		Items:           orderItems,
	}

	if err := s.orderRepo.PlaceOrder(ctx, address, order); err != nil {
		logger.Error().Err(err).Msg("Error persisting order")
		return nil, err
	}
	order.Address = *address
	return order, nil
}

func (s *CheckoutService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order, email string) {
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

func missingFields(req PlaceOrderRequest) []string {
	var missing []string
	if req.UserID == "" {
		missing = append(missing, "userId")
	}
	if req.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if req.LastName == "" {
		missing = append(missing, "lastName")
	}
	if req.Address == "" {
		missing = append(missing, "address")
	}
	if req.City == "" {
		missing = append(missing, "city")
	}
	if req.State == "" {
		missing = append(missing, "state")
	}
	if req.Zip == "" {
		missing = append(missing, "zip")
	}
	return missing
}

// checkoutKey derives the idempotency key from the user and the exact cart
// contents, so resubmitting an unchanged cart is caught while a genuinely
// new cart checks out normally.
func checkoutKey(userID string, items []entity.CartItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s|%s|%s|%d", item.ProductID, item.Color, item.Size, item.Quantity))
	}
	sort.Strings(lines)
	sum := sha256.Sum256([]byte(userID + ":" + strings.Join(lines, ";")))
	return "checkout:" + hex.EncodeToString(sum[:])
}

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber generates a human-legible, globally unique order number:
// ORD-<millis-since-epoch>-<7 random base36 chars>.
func NewOrderNumber() string {
	var suffix [7]byte
	for i := range suffix {
		suffix[i] = base36Alphabet[rand.Intn(len(base36Alphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), string(suffix[:]))
}

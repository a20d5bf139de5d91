package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/cache"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
)

// In-memory stand-ins for the GORM repositories, the Redis cache, the payment
// gateway, and the Kafka publisher.

type fakeUserStore struct {
	users map[string]*entity.User
	calls int
}

func newFakeUserStore(users ...*entity.User) *fakeUserStore {
	s := &fakeUserStore{users: map[string]*entity.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) CreateUser(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetUserByID(_ context.Context, id string) (*entity.User, error) {
	s.calls++
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) UserExists(_ context.Context, id string) (bool, error) {
	s.calls++
	_, ok := s.users[id]
	return ok, nil
}

type fakeProductStore struct {
	products map[string]entity.Product
	calls    int
}

func newFakeProductStore(products ...entity.Product) *fakeProductStore {
	s := &fakeProductStore{products: map[string]entity.Product{}}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeProductStore) GetProductByID(_ context.Context, id string) (*entity.Product, error) {
	s.calls++
	if p, ok := s.products[id]; ok {
		return &p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeProductStore) GetProducts(_ context.Context) ([]entity.Product, error) {
	s.calls++
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeProductStore) GetProductsByCategory(_ context.Context, category string) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range s.products {
		for _, c := range p.Categories {
			if c.Name == category {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *fakeProductStore) GetProductsByIDs(_ context.Context, ids []string) (map[string]entity.Product, error) {
	s.calls++
	out := map[string]entity.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakeProductStore) SearchProducts(_ context.Context, query string, page, limit int) ([]entity.Product, int64, error) {
	var matches []entity.Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	total := int64(len(matches))
	start := (page - 1) * limit
	if start > len(matches) {
		start = len(matches)
	}
	end := start + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], total, nil
}

func (s *fakeProductStore) SearchCategories(_ context.Context, query string, limit int) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range s.products {
		for _, c := range p.Categories {
			if _, ok := seen[c.Name]; ok {
				continue
			}
			if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
				seen[c.Name] = struct{}{}
				out = append(out, c.Name)
			}
		}
	}
	sort.Strings(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeProductStore) ProductExists(_ context.Context, id string) (bool, error) {
	s.calls++
	_, ok := s.products[id]
	return ok, nil
}

type fakeCartStore struct {
	items []entity.CartItem
	calls int
}

func (s *fakeCartStore) FindVariant(_ context.Context, userID, productID, color, size string) (*entity.CartItem, error) {
	s.calls++
	for i := range s.items {
		it := &s.items[i]
		if it.UserID == userID && it.ProductID == productID && it.Color == color && it.Size == size {
			copied := *it
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeCartStore) CreateItem(_ context.Context, item *entity.CartItem) error {
	s.calls++
	s.items = append(s.items, *item)
	return nil
}

func (s *fakeCartStore) IncrementQuantity(_ context.Context, id string, delta int) (*entity.CartItem, error) {
	s.calls++
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity += delta
			copied := s.items[i]
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCartStore) ListByUser(_ context.Context, userID string) ([]entity.CartItem, error) {
	var out []entity.CartItem
	for _, it := range s.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *fakeCartStore) DeleteByUserAndProduct(_ context.Context, userID, productID string) error {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.UserID == userID && it.ProductID == productID {
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	return nil
}

func (s *fakeCartStore) clear(userID string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if it.UserID != userID {
			kept = append(kept, it)
		}
	}
	s.items = kept
}

// fakeOrderStore mimics the transactional PlaceOrder by clearing the linked
// cart store on success.
type fakeOrderStore struct {
	cart     *fakeCartStore
	orders   map[string]*entity.Order
	address  map[string]*entity.Address
	failNext error
}

func newFakeOrderStore(cart *fakeCartStore) *fakeOrderStore {
	return &fakeOrderStore{
		cart:    cart,
		orders:  map[string]*entity.Order{},
		address: map[string]*entity.Address{},
	}
}

func (s *fakeOrderStore) PlaceOrder(_ context.Context, address *entity.Address, order *entity.Order) error {
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	order.AddressID = address.ID
	order.CreatedAt = time.Now()
	s.address[address.ID] = address
	s.orders[order.ID] = order
	if s.cart != nil {
		s.cart.clear(order.UserID)
	}
	return nil
}

func (s *fakeOrderStore) GetOrdersByUserID(_ context.Context, userID string) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *fakeOrderStore) GetOrderByPaymentIntent(_ context.Context, intentID string) (*entity.Order, error) {
	for _, o := range s.orders {
		if o.PaymentIntentID == intentID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeOrderStore) UpdateOrderStatus(_ context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (s *fakeOrderStore) ListExpiredPendingPayment(_ context.Context, cutoff time.Time) ([]entity.Order, error) {
	var out []entity.Order
	for _, o := range s.orders {
		if o.Status == entity.StatusPendingPayment && o.CreatedAt.Before(cutoff) {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeCache struct {
	values map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return "", cache.ErrCacheMiss
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.values[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *fakeCache) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	if _, ok := c.values[key]; ok {
		return false, nil
	}
	c.values[key] = value
	return true, nil
}

type fakeGateway struct {
	intents    int
	failIntent error
	valid      bool
}

func (g *fakeGateway) CreateIntent(_ context.Context, _ decimal.Decimal, _ string) (string, error) {
	if g.failIntent != nil {
		return "", g.failIntent
	}
	g.intents++
	return fmt.Sprintf("pay_intent_%d", g.intents), nil
}

func (g *fakeGateway) VerifyWebhook(_ []byte, _ string) bool {
	return g.valid
}

type publishedEvent struct {
	key   string
	value []byte
}

type fakePublisher struct {
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, key string, value []byte) error {
	p.events = append(p.events, publishedEvent{key: key, value: value})
	return nil
}

type fakeSuggestionStore struct {
	suggestions map[string]*entity.SearchSuggestion
}

func newFakeSuggestionStore() *fakeSuggestionStore {
	return &fakeSuggestionStore{suggestions: map[string]*entity.SearchSuggestion{}}
}

func (s *fakeSuggestionStore) Upsert(_ context.Context, suggestion *entity.SearchSuggestion) error {
	if existing, ok := s.suggestions[suggestion.Term]; ok {
		existing.Popularity++
		return nil
	}
	copied := *suggestion
	s.suggestions[suggestion.Term] = &copied
	return nil
}

func (s *fakeSuggestionStore) TopMatching(_ context.Context, query string, limit int) ([]entity.SearchSuggestion, error) {
	var out []entity.SearchSuggestion
	for _, sg := range s.suggestions {
		if strings.Contains(sg.Term, strings.ToLower(query)) {
			out = append(out, *sg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Popularity > out[j].Popularity })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func testUser() *entity.User {
	return &entity.User{ID: objectid.New(), Name: "Asha", Email: "asha@example.com"}
}

func testProduct(name, price string) entity.Product {
	d, _ := decimal.NewFromString(price)
	return entity.Product{
		ID:        objectid.New(),
		Name:      name,
		Price:     d,
		MainImage: "/images/" + strings.ToLower(name) + ".jpg",
	}
}

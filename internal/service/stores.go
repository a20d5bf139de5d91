package service

import (
	"context"
	"time"

	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

// Persistence interfaces consumed by the services. The GORM repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	UserExists(ctx context.Context, id string) (bool, error)
}

type ProductStore interface {
	GetProductByID(ctx context.Context, id string) (*entity.Product, error)
	GetProducts(ctx context.Context) ([]entity.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]entity.Product, error)
	GetProductsByIDs(ctx context.Context, ids []string) (map[string]entity.Product, error)
	SearchProducts(ctx context.Context, query string, page, limit int) ([]entity.Product, int64, error)
	SearchCategories(ctx context.Context, query string, limit int) ([]string, error)
	ProductExists(ctx context.Context, id string) (bool, error)
}

type CartStore interface {
	FindVariant(ctx context.Context, userID, productID, color, size string) (*entity.CartItem, error)
	CreateItem(ctx context.Context, item *entity.CartItem) error
	IncrementQuantity(ctx context.Context, id string, delta int) (*entity.CartItem, error)
	ListByUser(ctx context.Context, userID string) ([]entity.CartItem, error)
	DeleteByUserAndProduct(ctx context.Context, userID, productID string) error
}

type OrderStore interface {
	PlaceOrder(ctx context.Context, address *entity.Address, order *entity.Order) error
	GetOrdersByUserID(ctx context.Context, userID string) ([]entity.Order, error)
	GetOrderByPaymentIntent(ctx context.Context, intentID string) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error)
	ListExpiredPendingPayment(ctx context.Context, cutoff time.Time) ([]entity.Order, error)
}

type SuggestionStore interface {
	Upsert(ctx context.Context, suggestion *entity.SearchSuggestion) error
	TopMatching(ctx context.Context, query string, limit int) ([]entity.SearchSuggestion, error)
}

// EventPublisher pushes order lifecycle events onto the message bus.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

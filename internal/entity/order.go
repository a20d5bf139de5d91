package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	StatusPending        OrderStatus = "PENDING"
	StatusProcessing     OrderStatus = "PROCESSING"
	StatusShipped        OrderStatus = "SHIPPED"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusCancelled      OrderStatus = "CANCELLED"
)

// validTransitions maps each status to the statuses reachable from it.
// Orders are only ever created in PENDING_PAYMENT; payment confirmation
// moves them to PENDING, everything past that is driven externally.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPendingPayment: {StatusPending, StatusCancelled},
	StatusPending:        {StatusProcessing, StatusCancelled},
	StatusProcessing:     {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range validTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Address is created fresh on every checkout and owned exclusively by the
// order that references it.
type Address struct {
	ID        string `gorm:"primaryKey;type:char(24)" json:"id"`
	FirstName string `gorm:"not null;type:varchar(100)" json:"firstName"`
	LastName  string `gorm:"not null;type:varchar(100)" json:"lastName"`
	Address   string `gorm:"not null;type:varchar(255)" json:"address"`
	City      string `gorm:"not null;type:varchar(100)" json:"city"`
	State     string `gorm:"not null;type:varchar(100)" json:"state"`
	Zip       string `gorm:"not null;type:varchar(20)" json:"zip"`
	UserID    string `gorm:"not null;type:char(24);index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
}

type Order struct {
	ID              string          `gorm:"primaryKey;type:char(24)" json:"id"`
	OrderNumber     string          `gorm:"unique;not null;type:varchar(40)" json:"orderNumber"`
	TotalAmount     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"totalAmount"`
	UserID          string          `gorm:"not null;type:char(24);index" json:"userId"`
	AddressID       string          `gorm:"not null;type:char(24)" json:"addressId"`
	Status          OrderStatus     `gorm:"not null;type:varchar(20);index" json:"status"`
	PaymentMethod   string          `gorm:"not null;type:varchar(50)" json:"paymentMethod"`
	PaymentIntentID string          `gorm:"type:varchar(64);index" json:"paymentIntentId,omitempty"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Address         Address         `gorm:"foreignKey:AddressID" json:"address"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OrderItem is the immutable snapshot of a cart line item at purchase time.
// Price is the unit price copied from the catalog when the order was placed,
// so historical orders are unaffected by later price changes.
type OrderItem struct {
	ID        string          `gorm:"primaryKey;type:char(24)" json:"id"`
	OrderID   string          `gorm:"not null;type:char(24);index" json:"orderId"`
	ProductID string          `gorm:"not null;type:char(24)" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Color     string          `gorm:"type:varchar(50)" json:"color"`
	Size      string          `gorm:"type:varchar(50)" json:"size"`

	Product *ProductSummary `gorm:"-" json:"product,omitempty"`
}

package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// PlaceOrder persists the checkout result as one transaction: the shipping
// address, the order with its line-item snapshots, and the removal of the
// user's cart rows. Either all of it lands or none of it does.
func (r *OrderRepository) PlaceOrder(ctx context.Context, address *entity.Address, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(address).Error; err != nil {
			return err
		}
		order.AddressID = address.ID
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", order.UserID).Delete(&entity.CartItem{}).Error
	})
}

// GetOrdersByUserID returns the user's orders newest-first with line items
// and address populated.
func (r *OrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Address").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetOrderByPaymentIntent(ctx context.Context, intentID string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Address").
		First(&order, "payment_intent_id = ?", intentID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus moves an order between lifecycle states. The compare on
// the current status makes concurrent webhook re-deliveries a no-op.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id string, from, to entity.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListExpiredPendingPayment returns orders still awaiting payment that were
// created before the cutoff.
func (r *OrderRepository) ListExpiredPendingPayment(ctx context.Context, cutoff time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", entity.StatusPendingPayment, cutoff).
		Find(&orders).Error
	return orders, err
}

// IsNotFound reports whether err is the store's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

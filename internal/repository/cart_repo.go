package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// FindVariant looks up the single active row for the exact
// (user, product, color, size) key. An unset color or size matches as a key,
// not as a wildcard.
func (r *CartRepository) FindVariant(ctx context.Context, userID, productID, color, size string) (*entity.CartItem, error) {
	var item entity.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND color = ? AND size = ?", userID, productID, color, size).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) CreateItem(ctx context.Context, item *entity.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// IncrementQuantity adds delta to an existing row and returns the updated row.
func (r *CartRepository) IncrementQuantity(ctx context.Context, id string, delta int) (*entity.CartItem, error) {
	err := r.db.WithContext(ctx).Model(&entity.CartItem{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
	if err != nil {
		return nil, err
	}
	var item entity.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	return items, err
}

// DeleteByUserAndProduct removes the matching line item(s). Removing nothing
// is not an error.
func (r *CartRepository) DeleteByUserAndProduct(ctx context.Context, userID, productID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entity.CartItem{}).Error
}

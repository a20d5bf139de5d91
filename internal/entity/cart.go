package entity

import "time"

// CartItem is one (user, product, color, size) selection. At most one active
// row exists per variant key; a repeated add increments Quantity instead of
// creating a duplicate.
type CartItem struct {
	ID        string `gorm:"primaryKey;type:char(24)" json:"id"`
	UserID    string `gorm:"not null;type:char(24);index" json:"userId"`
	ProductID string `gorm:"not null;type:char(24);index" json:"productId"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Color     string `gorm:"type:varchar(50)" json:"color"`
	Size      string `gorm:"type:varchar(50)" json:"size"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartItemView is a cart row joined with the owning product's current
// display data.
type CartItemView struct {
	CartItem
	Product ProductSummary `json:"product"`
}

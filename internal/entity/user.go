package entity

import "time"

type User struct {
	ID       string `gorm:"primaryKey;type:char(24)" json:"id"`
	Name     string `gorm:"not null;type:varchar(100)" json:"name"`
	Email    string `gorm:"unique;not null;type:varchar(100)" json:"email"`
	Password string `gorm:"type:varchar(255)" json:"-"` // empty for federated identities
	IsAdmin  bool   `gorm:"not null;default:false" json:"isAdmin"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

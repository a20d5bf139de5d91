package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// StringList stores a list of plain strings in a single text column,
// newline separated. The catalog's image/size/color/tag lists never contain
// newlines, so the encoding round-trips cleanly.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	return strings.Join(l, "\n"), nil
}

func (l *StringList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if raw == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}

type Product struct {
	ID          string          `gorm:"primaryKey;type:char(24)" json:"id"`
	Name        string          `gorm:"not null;type:varchar(255)" json:"name"`
	Description string          `gorm:"not null;type:text" json:"description"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	MainImage   string          `gorm:"not null;type:varchar(512)" json:"mainImage"`
	OtherImages StringList      `gorm:"type:text" json:"otherImages"`
	Sizes       StringList      `gorm:"type:text" json:"sizes"`
	Colors      StringList      `gorm:"type:text" json:"colors"`
	Tags        StringList      `gorm:"type:text" json:"tags"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	Categories  []Category      `gorm:"many2many:product_categories" json:"categories"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Category struct {
	ID   string `gorm:"primaryKey;type:char(24)" json:"id"`
	Name string `gorm:"unique;not null;type:varchar(100)" json:"name"`
}

// ProductSummary is the slice of catalog data joined onto cart and order
// line items for display.
type ProductSummary struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name"`
	MainImage string          `json:"mainImage"`
	Price     decimal.Decimal `json:"price"`
}

type SearchSuggestion struct {
	ID         string `gorm:"primaryKey;type:char(24)" json:"id"`
	Term       string `gorm:"unique;not null;type:varchar(255)" json:"term"`
	Popularity int    `gorm:"not null;default:1" json:"popularity"`
}

package migrations

import (
	"time"

	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
)

// AutoMigrate creates or updates the storefront schema. Idempotent; retried
// because the database container may still be warming up at boot.
func AutoMigrate(retries int, db *gorm.DB) error {
	migrate := func() error {
		return db.AutoMigrate(
			&entity.User{},
			&entity.Category{},
			&entity.Product{},
			&entity.CartItem{},
			&entity.Address{},
			&entity.Order{},
			&entity.OrderItem{},
			&entity.SearchSuggestion{},
		)
	}

	err := migrate()
	for i := 0; err != nil && i < retries; i++ {
		time.Sleep(1 * time.Second)
		err = migrate()
	}
	return err
}

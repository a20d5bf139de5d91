package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/cache"
	"github.com/Dhruvp132/Dhyan-ecom/internal/config"
	"github.com/Dhruvp132/Dhyan-ecom/internal/entity"
	"github.com/Dhruvp132/Dhyan-ecom/internal/objectid"
	"github.com/Dhruvp132/Dhyan-ecom/internal/repository"
	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
	"github.com/Dhruvp132/Dhyan-ecom/migrations"
)

type seedProduct struct {
	name        string
	description string
	price       string
	mainImage   string
	otherImages []string
	sizes       []string
	colors      []string
	tags        []string
	quantity    int
	categories  []string
}

var seedProducts = []seedProduct{
	{
		name:        "Classic Crew Neck T-Shirt",
		description: "Soft combed cotton tee with a relaxed fit for everyday wear.",
		price:       "499.00",
		mainImage:   "/images/products/crew-neck-tee.jpg",
		otherImages: []string{"/images/products/crew-neck-tee-2.jpg"},
		sizes:       []string{"S", "M", "L", "XL"},
		colors:      []string{"white", "black", "navy"},
		tags:        []string{"tshirt", "cotton", "casual"},
		quantity:    120,
		categories:  []string{"man"},
	},
	{
		name:        "Slim Fit Denim Jeans",
		description: "Stretch denim with a tapered leg and mid rise waist.",
		price:       "1499.00",
		mainImage:   "/images/products/slim-jeans.jpg",
		otherImages: []string{"/images/products/slim-jeans-2.jpg", "/images/products/slim-jeans-3.jpg"},
		sizes:       []string{"30", "32", "34", "36"},
		colors:      []string{"indigo", "black"},
		tags:        []string{"jeans", "denim"},
		quantity:    80,
		categories:  []string{"man"},
	},
	{
		name:        "Floral Summer Dress",
		description: "Lightweight printed dress with an A-line silhouette.",
		price:       "1299.00",
		mainImage:   "/images/products/floral-dress.jpg",
		otherImages: []string{"/images/products/floral-dress-2.jpg"},
		sizes:       []string{"XS", "S", "M", "L"},
		colors:      []string{"yellow", "blue"},
		tags:        []string{"dress", "summer", "floral"},
		quantity:    60,
		categories:  []string{"woman"},
	},
	{
		name:        "High Waist Leggings",
		description: "Four-way stretch leggings with a wide comfort waistband.",
		price:       "799.00",
		mainImage:   "/images/products/leggings.jpg",
		sizes:       []string{"S", "M", "L"},
		colors:      []string{"black", "grey"},
		tags:        []string{"leggings", "activewear"},
		quantity:    150,
		categories:  []string{"woman"},
	},
	{
		name:        "Kids Graphic Hoodie",
		description: "Fleece-lined hoodie with a front print, built for the playground.",
		price:       "899.00",
		mainImage:   "/images/products/kids-hoodie.jpg",
		otherImages: []string{"/images/products/kids-hoodie-2.jpg"},
		sizes:       []string{"4-5Y", "6-7Y", "8-9Y"},
		colors:      []string{"red", "green"},
		tags:        []string{"hoodie", "kids"},
		quantity:    90,
		categories:  []string{"children"},
	},
	{
		name:        "Kids Cotton Shorts",
		description: "Breathable cotton shorts with an elastic drawstring waist.",
		price:       "449.00",
		mainImage:   "/images/products/kids-shorts.jpg",
		sizes:       []string{"4-5Y", "6-7Y", "8-9Y", "10-11Y"},
		colors:      []string{"blue", "khaki"},
		tags:        []string{"shorts", "kids", "summer"},
		quantity:    110,
		categories:  []string{"children"},
	},
	{
		name:        "Oversized Flannel Shirt",
		description: "Brushed flannel in a boxy cut, wears well open or buttoned.",
		price:       "1099.00",
		mainImage:   "/images/products/flannel.jpg",
		sizes:       []string{"S", "M", "L", "XL", "XXL"},
		colors:      []string{"red-check", "green-check"},
		tags:        []string{"shirt", "flannel", "winter"},
		quantity:    70,
		categories:  []string{"man", "woman"},
	},
	{
		name:        "Everyday Sneakers",
		description: "Low-top sneakers with a cushioned sole and canvas upper.",
		price:       "1999.00",
		mainImage:   "/images/products/sneakers.jpg",
		otherImages: []string{"/images/products/sneakers-2.jpg"},
		sizes:       []string{"6", "7", "8", "9", "10", "11"},
		colors:      []string{"white", "black"},
		tags:        []string{"shoes", "sneakers"},
		quantity:    95,
		categories:  []string{"man", "woman"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	store := cache.NewRedisCache(rdb, "storefront")

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	catalog := service.NewCatalogService(productRepo, suggestionRepo, store)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
	if err := seedCatalog(ctx, productRepo, catalog); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Println("Seed completed")
}

func seedAdmin(ctx context.Context, users *repository.UserRepository) error {
	const adminEmail = "admin@dhyan-ecom.local"
	existing, err := users.GetUserByEmail(ctx, adminEmail)
	if err == nil && existing != nil {
		log.Printf("Admin user already present: %s", adminEmail)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &entity.User{
		ID:       objectid.New(),
		Name:     "Store Admin",
		Email:    adminEmail,
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return err
	}
	log.Printf("Created admin user %s", adminEmail)
	return nil
}

func seedCatalog(ctx context.Context, products *repository.ProductRepository, catalog *service.CatalogService) error {
	for _, sp := range seedProducts {
		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return fmt.Errorf("bad price for %q: %w", sp.name, err)
		}

		categories := make([]entity.Category, 0, len(sp.categories))
		for _, name := range sp.categories {
			category, err := products.FindOrCreateCategory(ctx, name, objectid.New)
			if err != nil {
				return err
			}
			categories = append(categories, *category)
		}

		product := &entity.Product{
			ID:          objectid.New(),
			Name:        sp.name,
			Description: sp.description,
			Price:       price,
			MainImage:   sp.mainImage,
			OtherImages: sp.otherImages,
			Sizes:       sp.sizes,
			Colors:      sp.colors,
			Tags:        sp.tags,
			Quantity:    sp.quantity,
			Categories:  categories,
		}
		if err := products.CreateProduct(ctx, product); err != nil {
			return err
		}
		catalog.InvalidateProduct(ctx, product.ID)
		log.Printf("Seeded product %q (%s)", product.Name, product.ID)
	}
	return nil
}

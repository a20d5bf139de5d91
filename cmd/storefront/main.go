package main

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Dhruvp132/Dhyan-ecom/internal/api"
	"github.com/Dhruvp132/Dhyan-ecom/internal/cache"
	"github.com/Dhruvp132/Dhyan-ecom/internal/config"
	"github.com/Dhruvp132/Dhyan-ecom/internal/consumer"
	"github.com/Dhruvp132/Dhyan-ecom/internal/repository"
	"github.com/Dhruvp132/Dhyan-ecom/internal/service"
	"github.com/Dhruvp132/Dhyan-ecom/migrations"
)

func connectDB(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		log.Printf("Retry %d: failed to connect to DB: %v", i+1, err)
		time.Sleep(3 * time.Second)
	}
	return nil, err
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := connectDB(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := migrations.AutoMigrate(3, db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	store := cache.NewRedisCache(rdb, "storefront")

	orderWriter := config.NewKafkaWriter(cfg.Brokers(), cfg.OrderTopic)
	events := service.NewKafkaPublisher(orderWriter)

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)

	gateway := service.NewRazorpayGateway(cfg.PaymentGatewayURL, cfg.PaymentKeyID, cfg.PaymentKeySecret)
	mailer := service.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ContactEmail)

	cartService := service.NewCartService(cartRepo, userRepo, productRepo)
	checkoutService := service.NewCheckoutService(userRepo, cartRepo, productRepo, orderRepo, store, gateway, events)
	orderService := service.NewOrderService(orderRepo, productRepo)
	catalogService := service.NewCatalogService(productRepo, suggestionRepo, store)
	userService := service.NewUserService(userRepo, store, cfg.JWTSecret)
	paymentService := service.NewPaymentService(orderRepo, userRepo, gateway, events, cfg.PaymentTimeout)

	cartHandler := api.NewCartHandler(cartService)
	orderHandler := api.NewOrderHandler(checkoutService, orderService)
	productHandler := api.NewProductHandler(catalogService)
	userHandler := api.NewUserHandler(userService)
	contactHandler := api.NewContactHandler(mailer)
	webhookHandler := api.NewWebhookHandler(paymentService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orderReader := config.NewKafkaReader(cfg.Brokers(), cfg.OrderTopic, "storefront-notification-group")
	notificationConsumer := consumer.NewConsumer(orderReader, mailer)
	go notificationConsumer.Start(ctx)
	go paymentService.RunExpiry(ctx, time.Minute)

	e := echo.New()

	limiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(20),
				Burst:     60,
				ExpiresIn: 3 * time.Minute,
			}),
		IdentifierExtractor: func(context echo.Context) (string, error) {
			return context.Request().RemoteAddr, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(429, map[string]string{"error": "rate limit exceeded"})
		},
	}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RateLimiterWithConfig(limiterConfig))

	e.POST("/cart/add", cartHandler.AddToCart)
	e.POST("/cart/list", cartHandler.ListCart)
	e.POST("/cart/remove", cartHandler.RemoveFromCart)

	e.POST("/order", orderHandler.CreateOrder)
	e.POST("/orders/list", orderHandler.ListOrders)

	e.GET("/products", productHandler.GetProducts)
	e.GET("/products/:id", productHandler.GetProductByID)
	e.POST("/products/category", productHandler.GetProductsByCategory)
	e.GET("/search/products", productHandler.SearchProducts)
	e.GET("/search/autocomplete", productHandler.Autocomplete)

	e.POST("/users/register", userHandler.Register)
	e.POST("/users/login", userHandler.Login)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
	}
	me := e.Group("/users/me")
	me.Use(echojwt.WithConfig(jwtConfig))
	me.GET("", userHandler.Me)

	e.POST("/contact", contactHandler.Contact)
	e.POST("/payment/webhook", webhookHandler.PaymentWebhook)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]interface{}{
			"status":  "ok",
			"service": "storefront",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}

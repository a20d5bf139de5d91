package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the storefront needs from the environment.
type Config struct {
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	DBHost string `mapstructure:"DB_HOST"`
	DBPort string `mapstructure:"DB_PORT"`
	DBUser string `mapstructure:"DB_USER"`
	DBPass string `mapstructure:"DB_PASS"`
	DBName string `mapstructure:"DB_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	OrderTopic   string `mapstructure:"ORDER_TOPIC"`

	JWTSecret string `mapstructure:"JWT_SECRET"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPass     string `mapstructure:"SMTP_PASS"`
	ContactEmail string `mapstructure:"CONTACT_EMAIL"`

	PaymentGatewayURL string `mapstructure:"PAYMENT_GATEWAY_URL"`
	PaymentKeyID      string `mapstructure:"PAYMENT_KEY_ID"`
	PaymentKeySecret  string `mapstructure:"PAYMENT_KEY_SECRET"`

	PaymentTimeout time.Duration `mapstructure:"PAYMENT_TIMEOUT"`
}

// Load reads configuration from the environment with sane local defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "storefront")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092,localhost:9093,localhost:9094")
	v.SetDefault("ORDER_TOPIC", "order-topic")
	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("PAYMENT_GATEWAY_URL", "https://api.razorpay.com/v1")
	v.SetDefault("PAYMENT_TIMEOUT", 30*time.Minute)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the MySQL connection string for the ORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPass, c.DBHost, c.DBPort, c.DBName)
}

// Brokers splits the comma-separated broker list.
func (c *Config) Brokers() []string {
	return strings.Split(c.KafkaBrokers, ",")
}

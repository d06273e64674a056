package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"PORT"`
	MongoURI          string `mapstructure:"MONGODB_URI"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Email (SMTP) configuration.
	EmailUser     string `mapstructure:"EMAIL_USER"`
	EmailPassword string `mapstructure:"EMAIL_PASSWORD"`
	SMTPHost      string `mapstructure:"SMTP_HOST"`
	SMTPPort      int    `mapstructure:"SMTP_PORT"`

	// Payment configuration.
	StripeKey          string  `mapstructure:"STRIPE_KEY"`
	PaymentConcurrency int     `mapstructure:"PAYMENT_CONCURRENCY"`
	PaymentJobTimeout  int     `mapstructure:"PAYMENT_JOB_TIMEOUT_SECONDS"`
	PaymentFeeRate     float64 `mapstructure:"PAYMENT_FEE_RATE"`
	RefundWindowHours  int     `mapstructure:"REFUND_WINDOW_HOURS"`
	InvoiceDir         string  `mapstructure:"INVOICE_DIR"`

	// Blockchain configuration.
	BlockchainNetwork string `mapstructure:"BLOCKCHAIN_NETWORK"`
	ContractAddress   string `mapstructure:"CONTRACT_ADDRESS"`
	ProviderURL       string `mapstructure:"PROVIDER_URL"`

	// Pinata (IPFS pinning) configuration.
	PinataAPIKey    string `mapstructure:"PINATA_API_KEY"`
	PinataAPISecret string `mapstructure:"PINATA_API_SECRET"`

	// Firebase service account credentials.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("FRONTEND_URL", "http://localhost:3000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SMTP_HOST", "smtp.gmail.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("PAYMENT_CONCURRENCY", 10)
	viper.SetDefault("PAYMENT_JOB_TIMEOUT_SECONDS", 30)
	viper.SetDefault("PAYMENT_FEE_RATE", 0.025)
	viper.SetDefault("REFUND_WINDOW_HOURS", 24)
	viper.SetDefault("INVOICE_DIR", "invoices")
	viper.SetDefault("BLOCKCHAIN_NETWORK", "sepolia")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	// Bambora Checkout credentials. The API key sent on every gateway call is
	// derived from these three parts.
	AccessToken    string
	MerchantNumber string
	SecretToken    string
	MD5Key         string

	PaymentWindowID   int
	InstantCapture    bool
	ImmediateRedirect bool
	CanVoid           bool
	Language          string

	AcceptURL   string
	DeclineURL  string
	CallbackURL string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		AccessToken:    os.Getenv("BAMBORA_ACCESS_TOKEN"),
		MerchantNumber: os.Getenv("BAMBORA_MERCHANT_NUMBER"),
		SecretToken:    os.Getenv("BAMBORA_SECRET_TOKEN"),
		MD5Key:         os.Getenv("BAMBORA_MD5_KEY"),

		PaymentWindowID:   envInt("BAMBORA_PAYMENT_WINDOW_ID", 1),
		InstantCapture:    envBool("BAMBORA_INSTANT_CAPTURE"),
		ImmediateRedirect: envBool("BAMBORA_IMMEDIATE_REDIRECT"),
		CanVoid:           envBool("BAMBORA_CAN_VOID"),
		Language:          envDefault("SHOP_LOCALE", "en-US"),

		AcceptURL:   os.Getenv("CHECKOUT_ACCEPT_URL"),
		DeclineURL:  os.Getenv("CHECKOUT_DECLINE_URL"),
		CallbackURL: os.Getenv("CHECKOUT_CALLBACK_URL"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid value for %s, using default: %v", key, err)
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}

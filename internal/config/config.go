package config

import (
	"fmt"
	"os"
)

// Config holds the process-wide settings. Database settings are read by the
// db package itself so that DATABASE_URL keeps working unchanged.
type Config struct {
	Port string

	JWTSecret string

	MidtransBaseURL   string
	MidtransServerKey string

	// RedisAddr is optional; empty disables status publishing.
	RedisAddr     string
	RedisPassword string

	GoEnv string
}

func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		MidtransBaseURL:   os.Getenv("MIDTRANS_BASE_URL"),
		MidtransServerKey: os.Getenv("MIDTRANS_SERVER_KEY"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		GoEnv: os.Getenv("GO_ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MidtransBaseURL == "" {
		cfg.MidtransBaseURL = "https://api.sandbox.midtrans.com"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MidtransServerKey == "" {
		return Config{}, fmt.Errorf("MIDTRANS_SERVER_KEY is required")
	}

	return cfg, nil
}

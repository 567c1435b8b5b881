package config

import (
	"os"
	"strconv"
	"time"
)

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
}

type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins string
	JWTSecret      string
	JWTExpiry      time.Duration
	MaxUploadSize  int
	ResendAPIKey   string
	EmailFrom      string
	S3             S3Config
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      getDuration("JWT_EXPIRY", 7*24*time.Hour),
		MaxUploadSize:  getInt("MAX_UPLOAD_SIZE", 5*1024*1024),
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", "MatjibLog <noreply@matjiblog.com>"),
	}

	cfg.S3.Region = getEnv("S3_REGION", "ap-northeast-2")
	cfg.S3.Bucket = os.Getenv("S3_BUCKET")
	cfg.S3.AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3.SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	cfg.S3.PublicURL = os.Getenv("S3_PUBLIC_URL")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

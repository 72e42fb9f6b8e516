package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Port             string
	Environment      string // "development", "staging", "production"
	LogLevel         string
	JWTSecret        string
	JWTTokenLifespan time.Duration
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSSLMode        string
	AWSRegion        string
	SESEmailSender   string
	AppBaseURL       string
	ResetCodeTTL     time.Duration
	AppVersion       string
}

var Cfg AppConfig

// LoadConfig loads the application configuration from environment variables.
func LoadConfig() {
	// Load .env for local development, ignore the error if it does not exist.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables:", err)
	}

	Cfg.Port = getEnv("PORT", "8080")
	Cfg.Environment = getEnv("APP_ENV", "development")
	Cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	Cfg.JWTSecret = getEnv("JWT_SECRET_KEY", "")

	jwtLifespanHours, err := strconv.Atoi(getEnv("JWT_TOKEN_LIFESPAN_HOURS", "24"))
	if err != nil {
		log.Printf("Invalid JWT_TOKEN_LIFESPAN_HOURS, falling back to 24h: %v", err)
		jwtLifespanHours = 24
	}
	Cfg.JWTTokenLifespan = time.Duration(jwtLifespanHours) * time.Hour

	Cfg.DBHost = getEnv("DB_HOST", "localhost")
	Cfg.DBPort = getEnv("DB_PORT", "5432")
	Cfg.DBUser = getEnv("DB_USER", "moodyme_user")
	Cfg.DBPassword = getEnv("DB_PASSWORD", "moodyme_pass")
	Cfg.DBName = getEnv("DB_NAME", "moodyme_db")
	Cfg.DBSSLMode = getEnv("DB_SSLMODE", "disable")

	Cfg.AWSRegion = getEnv("AWS_REGION", "")
	Cfg.SESEmailSender = getEnv("SES_EMAIL_SENDER", "")

	Cfg.AppBaseURL = getEnv("APP_BASE_URL", "http://localhost:3000")

	resetTTLMinutes, err := strconv.Atoi(getEnv("RESET_CODE_TTL_MINUTES", "60"))
	if err != nil || resetTTLMinutes <= 0 {
		log.Printf("Invalid RESET_CODE_TTL_MINUTES, falling back to 60m: %v", err)
		resetTTLMinutes = 60
	}
	Cfg.ResetCodeTTL = time.Duration(resetTTLMinutes) * time.Minute

	Cfg.AppVersion = getEnv("APP_VERSION", "")

	log.Printf("Configuration loaded for environment: %s", Cfg.Environment)
}

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func init() {
	LoadConfig()
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/misthy/shop-api/internal/models"
)

type Config struct {
	HTTP_ADDR       string
	DB_HOST         string
	DB_PORT         string
	DB_USER         string
	DB_PASSWORD     string
	DB_NAME         string
	JWT_SECRET      string
	UPLOAD_DIR      string
	PUBLIC_BASE_URL string
	KAFKA_ADDRESS   string
	ES_URL          string
	ES_USER         string
	ES_PASSWORD     string
	LOG_LEVEL       string
	BCRYPT_COST     int
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		HTTP_ADDR:       getDefault("HTTP_ADDR", ":8080"),
		DB_HOST:         os.Getenv("DB_HOST"),
		DB_PORT:         os.Getenv("DB_PORT"),
		DB_USER:         os.Getenv("DB_USER"),
		DB_PASSWORD:     os.Getenv("DB_PASSWORD"),
		DB_NAME:         os.Getenv("DB_NAME"),
		JWT_SECRET:      os.Getenv("JWT_SECRET"),
		UPLOAD_DIR:      getDefault("UPLOAD_DIR", "uploads"),
		PUBLIC_BASE_URL: getDefault("PUBLIC_BASE_URL", "http://localhost:8080"),
		KAFKA_ADDRESS:   os.Getenv("KAFKA_ADDRESS"),
		ES_URL:          os.Getenv("ES_URL"),
		ES_USER:         os.Getenv("ES_USER"),
		ES_PASSWORD:     os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:       getDefault("LOG_LEVEL", "info"),
		BCRYPT_COST:     getIntDefault("BCRYPT_COST", bcrypt.DefaultCost),
	}

	// The signing secret must come from the environment, never from source.
	if config.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	return config, nil
}

func getDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Notice: %s=%q is not an integer, using default %d", key, v, def)
		return def
	}
	return n
}

func InitDB(configuration *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		configuration.DB_USER, configuration.DB_PASSWORD,
		configuration.DB_HOST, configuration.DB_PORT, configuration.DB_NAME,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to DB: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return nil, fmt.Errorf("cannot run migration: %w", err)
	}
	return db, nil
}

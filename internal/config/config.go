package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ADDRESS       string
	DATABASE_URL  string
	STATIC_DIR    string
	IMAGES_DIR    string
	KAFKA_ADDRESS string
	ES_URL        string
	ES_USER       string
	ES_PASSWORD   string
	LOG_LEVEL     string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		ADDRESS:       getenvDefault("ADDRESS", ":8080"),
		DATABASE_URL:  getenvDefault("DATABASE_URL", "shop.db"),
		STATIC_DIR:    getenvDefault("STATIC_DIR", "static_folder"),
		IMAGES_DIR:    getenvDefault("IMAGES_DIR", "img"),
		KAFKA_ADDRESS: os.Getenv("KAFKA_ADDRESS"),
		ES_URL:        os.Getenv("ES_URL"),
		ES_USER:       os.Getenv("ES_USER"),
		ES_PASSWORD:   os.Getenv("ES_PASSWORD"),
		LOG_LEVEL:     getenvDefault("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config trả về giá trị biến môi trường, ưu tiên .env
func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	return os.Getenv(key)
}

package lib

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file if one is present. Missing files are fine: in
// containers everything arrives through real environment variables.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

// Env returns the named environment variable or the given fallback.
func Env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

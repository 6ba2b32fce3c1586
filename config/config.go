package config

import (
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// Missing .env is fine, variables may come from the environment.
	godotenv.Load(".env")
}

// Config returns the value of the given environment variable.
func Config(key string) string {
	return os.Getenv(key)
}

package initializers

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls configuration from a local .env file into the environment.
func LoadEnv() error {
	log.Println("Loading env file")
	if err := godotenv.Load(); err != nil {
		log.Println("env not loading")
		return fmt.Errorf("failed to load .env: %w", err)
	}
	log.Println("Env loaded successfully")
	return nil
}

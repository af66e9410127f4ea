package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv pulls .env into the process environment. Absence is fine;
// production supplies real env vars.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
}

package main

import (
	"feedback_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// optional; config falls back to config.yaml when no env is set
	_ = godotenv.Load()

	app.Run()
}

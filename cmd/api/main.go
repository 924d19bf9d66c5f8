package main

import (
	"fmt"
	"os"

	"github.com/cartelera-app/cartelera/internal/app"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env file is fine, environment variables may come from the
	// actual environment.
	_ = godotenv.Load()

	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

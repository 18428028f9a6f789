// Command kithwatch runs the behavioral isolation risk engine.
package main

import (
	"github.com/joho/godotenv"

	"github.com/ananyev/kithwatch/internal/cli"
)

func main() {
	// Best effort: a missing .env is not an error.
	_ = godotenv.Load()

	cli.Execute()
}

// Command server runs the dictionary HTTP API.
package main

import (
	"context"
	"log"

	"github.com/finsl/signbank-backend/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("application failed: %v", err)
	}
}

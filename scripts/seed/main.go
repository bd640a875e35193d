package main

import (
	"context"
	"fmt"
	"log"

	"github.com/blaisecz/sleep-cycles/internal/config"
	"github.com/blaisecz/sleep-cycles/internal/logging"
	"github.com/blaisecz/sleep-cycles/internal/seed"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(context.Background(), db); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	fmt.Println("\nSample user IDs for testing:")
	for _, s := range seed.Samples() {
		profile := "default profile"
		if s.Profile != nil {
			profile = fmt.Sprintf("age %d, %s", s.Profile.Age, s.Profile.Gender)
		}
		fmt.Printf("  %s (%s, %s)\n", s.User.ID, s.User.Timezone, profile)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-auth-service/config"
	"github.com/oksasatya/go-auth-service/internal/application"
	"github.com/oksasatya/go-auth-service/internal/container"
	"github.com/oksasatya/go-auth-service/pkg/helpers"
)

func main() {
	userName := flag.String("user", "demoUser", "user name to seed")
	password := flag.String("password", "password123", "password for the seeded user")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	cfg.EventsEnabled = false
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	c, err := container.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer c.Close()

	res, err := c.Service.Register(ctx, *userName, *password)
	switch {
	case application.IsKind(err, application.KindConflict):
		fmt.Printf("already seeded: userName=%s\n", *userName)
	case err != nil:
		log.Fatalf("failed to seed user: %v", err)
	default:
		fmt.Printf("seeded user: id=%s userName=%s\n", res.UserID, *userName)
	}
}

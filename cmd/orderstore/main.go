package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/store/di"
)

func main() {
	_ = godotenv.Load()
	// The view service claims :8080; the store defaults to the address
	// the view service expects it on.
	if _, ok := os.LookupEnv("RUN_ADDRESS"); !ok {
		_ = os.Setenv("RUN_ADDRESS", ":8000")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		di.Module(),
	)

	run(ctx, app)
}

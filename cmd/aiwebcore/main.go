package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vairleon/ai-web-core/internal/app"
	"github.com/vairleon/ai-web-core/internal/config"
	"github.com/vairleon/ai-web-core/internal/logger"
)

func main() {
	// Best effort: a missing .env file is fine, real env vars still apply.
	_ = godotenv.Load()

	lg, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	cfg, err := config.Load()
	if err != nil {
		lg.Sugar().Fatalf("config: %v", err)
	}

	if err := app.Run(cfg, lg); err != nil {
		lg.Sugar().Fatalf("app: %v", err)
	}
}

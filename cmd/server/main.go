package main

import (
	"cloverpass/internal/config"
	"cloverpass/internal/logger"
	"cloverpass/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	lg := logger.New()
	defer lg.Sync()

	cfg := config.New()

	srv, err := server.New(cfg, lg)
	if err != nil {
		lg.Fatalw("failed to create server", "error", err)
	}
	defer srv.Close()

	if err := srv.Run(); err != nil {
		lg.Fatalw("server error", "error", err)
	}
}

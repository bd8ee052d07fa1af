package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/libreshelf/library-console-go/testutil/backend"
)

const (
	envAddr = "LIBRARY_BACKEND_ADDR"
	envDB   = "LIBRARY_BACKEND_DB"

	defaultAddr = ":8080"
	defaultDB   = "library.db"
)

// A small SQLite-backed stand-in for the real library API, mainly useful for
// local development and manual testing of the console.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	addr := envOrDefault(envAddr, defaultAddr)
	dsn := envOrDefault(envDB, defaultDB)

	b, err := backend.New(dsn)
	if err != nil {
		logger.Error("opening backend failed", "error", err.Error(), "dsn", dsn)
		os.Exit(1)
	}
	defer func() { _ = b.Close() }()

	logger.Info("backend listening", "addr", addr, "dsn", dsn)

	if err = b.Run(addr); err != nil {
		logger.Error("backend stopped", "error", err.Error())
		os.Exit(1)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

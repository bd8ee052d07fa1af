package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/libreshelf/library-console-go/library"
)

const (
	envAPIURL     = "LIBRARY_API_URL"
	defaultAPIURL = "http://localhost:8080"
)

var (
	flagAPIURL  string
	flagVerbose bool
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:          "library-console",
		Short:        "Manage authors, books, members and borrow records of a lending library",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "base URL of the library API (default $"+envAPIURL+")")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		authorsCommand(),
		booksCommand(),
		membersCommand(),
		borrowsCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if flagAPIURL != "" {
		return flagAPIURL
	}

	if fromEnv := os.Getenv(envAPIURL); fromEnv != "" {
		return fromEnv
	}

	return defaultAPIURL
}

func newConsole() (*library.Console, error) {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return library.NewConsole(apiURL(), library.WithLogger(logger))
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/brigadecore/brigade-foundations/signals"
	"github.com/brigadecore/brigade-foundations/version"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/internal/httpclient"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A .env file is optional; the environment always wins.
	_ = godotenv.Load()

	var logger *zap.Logger
	{
		config, err := loggerConfig()
		if err != nil {
			log.Fatal(err)
		}
		if logger, err = config.Build(); err != nil {
			log.Fatal(err)
		}
	}
	defer logger.Sync() // nolint: errcheck

	logger.Debug(
		"Starting Discord Forms Gateway Registrar",
		zap.String("version", version.Version()),
		zap.String("commit", version.Commit()),
	)

	newClient := func() (libDiscord.Client, error) {
		app, err := appConfig()
		if err != nil {
			return nil, err
		}
		config, err := httpClientConfig()
		if err != nil {
			return nil, err
		}
		return libDiscord.NewClient(app, httpclient.New(config, logger))
	}

	if err := run(signals.Context(), logger, newClient, os.Args[1:]); err != nil {
		logger.Error("registrar failed", zap.Error(err))
		logger.Sync() // nolint: errcheck
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	logger *zap.Logger,
	newClient newClientFn,
	args []string,
) error {
	rootCmd := newRootCommand(logger, newClient)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

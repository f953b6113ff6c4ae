package main

import (
	"github.com/brigadecore/brigade-foundations/os"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/internal/httpclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// appConfig populates the parts of the Discord App's details the registrar
// needs from environment variables. The public key is not one of them.
func appConfig() (libDiscord.App, error) {
	app := libDiscord.App{}
	var err error
	app.ApplicationID, err = os.GetRequiredEnvVar("DISCORD_APPLICATION_ID")
	if err != nil {
		return app, err
	}
	app.BotToken, err = os.GetRequiredEnvVar("DISCORD_BOT_TOKEN")
	return app, err
}

// httpClientConfig populates configuration for outbound HTTP requests from
// environment variables.
func httpClientConfig() (httpclient.Config, error) {
	config := httpclient.Config{}
	var err error
	config.MaxRetries, err = os.GetIntFromEnvVar("OUTBOUND_MAX_RETRIES", 0)
	return config, err
}

// loggerConfig builds a development zap configuration whose level is taken
// from the LOG_LEVEL environment variable.
func loggerConfig() (zap.Config, error) {
	config := zap.NewDevelopmentConfig()
	level, err := zapcore.ParseLevel(os.GetEnvVar("LOG_LEVEL", "info"))
	if err != nil {
		return config, errors.Wrap(err, "error parsing LOG_LEVEL")
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config, nil
}

package main

// nolint: lll
import (
	"time"

	"github.com/brigadecore/brigade-foundations/http"
	"github.com/brigadecore/brigade-foundations/os"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/internal/httpclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// channelsConfig encapsulates the IDs of the channels registrations are posted
// to.
type channelsConfig struct {
	boardGameChannelID string
	minecraftChannelID string
}

// appConfig populates the Discord App's details from environment variables.
func appConfig() (libDiscord.App, error) {
	app := libDiscord.App{}
	var err error
	app.ApplicationID, err = os.GetRequiredEnvVar("DISCORD_APPLICATION_ID")
	if err != nil {
		return app, err
	}
	app.PublicKey, err = os.GetRequiredEnvVar("DISCORD_PUBLIC_KEY")
	if err != nil {
		return app, err
	}
	app.BotToken, err = os.GetRequiredEnvVar("DISCORD_BOT_TOKEN")
	return app, err
}

// getChannelsConfig populates the target channel IDs from environment
// variables.
func getChannelsConfig() (channelsConfig, error) {
	config := channelsConfig{}
	var err error
	config.boardGameChannelID, err = os.GetRequiredEnvVar("BOARDGAME_CHANNEL_ID")
	if err != nil {
		return config, err
	}
	config.minecraftChannelID, err = os.GetRequiredEnvVar("MINECRAFT_CHANNEL_ID")
	return config, err
}

// httpClientConfig populates configuration for outbound HTTP requests from
// environment variables.
func httpClientConfig() (httpclient.Config, error) {
	config := httpclient.Config{}
	var err error
	config.MaxRetries, err = os.GetIntFromEnvVar("OUTBOUND_MAX_RETRIES", 0)
	if err != nil {
		return config, err
	}
	if config.MaxRetries < 0 {
		return config, errors.Errorf(
			"OUTBOUND_MAX_RETRIES must not be negative; got %d",
			config.MaxRetries,
		)
	}
	config.Timeout, err =
		os.GetDurationFromEnvVar("OUTBOUND_TIMEOUT", 30*time.Second)
	return config, err
}

// shutdownGracePeriod returns how long in-flight registrations are given to
// complete once the server has stopped.
func shutdownGracePeriod() (time.Duration, error) {
	return os.GetDurationFromEnvVar("SHUTDOWN_GRACE_PERIOD", 10*time.Second)
}

// loggerConfig builds a production zap configuration whose level is taken
// from the LOG_LEVEL environment variable.
func loggerConfig() (zap.Config, error) {
	config := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(os.GetEnvVar("LOG_LEVEL", "info"))
	if err != nil {
		return config, errors.Wrap(err, "error parsing LOG_LEVEL")
	}
	config.Level = zap.NewAtomicLevelAt(level)
	return config, nil
}

// serverConfig populates configuration for the HTTP/S server from environment
// variables.
func serverConfig() (http.ServerConfig, error) {
	config := http.ServerConfig{}
	var err error
	config.Port, err = os.GetIntFromEnvVar("PORT", 8080)
	if err != nil {
		return config, err
	}
	config.TLSEnabled, err = os.GetBoolFromEnvVar("TLS_ENABLED", false)
	if err != nil {
		return config, err
	}
	if config.TLSEnabled {
		config.TLSCertPath, err = os.GetRequiredEnvVar("TLS_CERT_PATH")
		if err != nil {
			return config, err
		}
		config.TLSKeyPath, err = os.GetRequiredEnvVar("TLS_KEY_PATH")
		if err != nil {
			return config, err
		}
	}
	return config, nil
}

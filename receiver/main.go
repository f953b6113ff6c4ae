package main

import (
	"log"
	"net/http"

	libHTTP "github.com/brigadecore/brigade-foundations/http"
	"github.com/brigadecore/brigade-foundations/signals"
	"github.com/brigadecore/brigade-foundations/version"
	libDiscord "github.com/gamenight-tools/discord-forms-gateway/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/internal/httpclient"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/attachments"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/discord"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/forms"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/httpx"
	"github.com/gamenight-tools/discord-forms-gateway/receiver/internal/tasks"
	"github.com/gorilla/mux"
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

	logger.Info(
		"Starting Discord Forms Gateway Receiver",
		zap.String("version", version.Version()),
		zap.String("commit", version.Commit()),
	)

	app, err := appConfig()
	if err != nil {
		logger.Fatal("error reading app configuration", zap.Error(err))
	}

	var httpClient *http.Client
	{
		config, err := httpClientConfig()
		if err != nil {
			logger.Fatal("error reading outbound http configuration", zap.Error(err))
		}
		httpClient = httpclient.New(config, logger)
	}

	runner := tasks.NewRunner(logger.Named("tasks"))

	var interactionService discord.InteractionService
	{
		channels, err := getChannelsConfig()
		if err != nil {
			logger.Fatal("error reading channel configuration", zap.Error(err))
		}
		client, err := libDiscord.NewClient(app, httpClient)
		if err != nil {
			logger.Fatal("error creating discord client", zap.Error(err))
		}
		boardGameForm, err := forms.NewBoardGameForm(
			channels.boardGameChannelID,
			attachments.NewFetcher(httpClient),
			logger.Named("boardgame"),
		)
		if err != nil {
			logger.Fatal("error creating board game form", zap.Error(err))
		}
		minecraftMapForm, err := forms.NewMinecraftMapForm(
			channels.minecraftChannelID,
		)
		if err != nil {
			logger.Fatal("error creating minecraft map form", zap.Error(err))
		}
		interactionService, err = discord.NewInteractionService(
			forms.NewSubmitter(client, runner, logger.Named("submitter")),
			logger.Named("interactions"),
			boardGameForm,
			minecraftMapForm,
		)
		if err != nil {
			logger.Fatal("error creating interaction service", zap.Error(err))
		}
	}

	var signatureVerificationFilter libHTTP.Filter
	{
		key, err := app.VerificationKey()
		if err != nil {
			logger.Fatal("error reading DISCORD_PUBLIC_KEY", zap.Error(err))
		}
		signatureVerificationFilter = discord.NewSignatureVerificationFilter(
			discord.SignatureVerificationFilterConfig{
				VerificationKey: key,
			},
		)
	}

	requestLoggingFilter := httpx.NewRequestLoggingFilter(logger.Named("http"))

	var server libHTTP.Server
	{
		router := mux.NewRouter()
		router.StrictSlash(true)
		router.HandleFunc("/healthz", libHTTP.Healthz).Methods(http.MethodGet)
		router.PathPrefix("/").Handler(
			discord.NewApplicationIDHandler(app.ApplicationID),
		).Methods(http.MethodGet)
		router.PathPrefix("/").HandlerFunc(
			requestLoggingFilter.Decorate(
				signatureVerificationFilter.Decorate(
					discord.NewInteractionHandler(
						interactionService,
						logger.Named("interactions"),
					).ServeHTTP,
				),
			),
		).Methods(http.MethodPost)
		serverConfig, err := serverConfig()
		if err != nil {
			logger.Fatal("error reading server configuration", zap.Error(err))
		}
		server = libHTTP.NewServer(router, &serverConfig)
	}

	gracePeriod, err := shutdownGracePeriod()
	if err != nil {
		logger.Fatal("error reading SHUTDOWN_GRACE_PERIOD", zap.Error(err))
	}

	logger.Info("server stopped", zap.Error(server.ListenAndServe(signals.Context())))

	if runner.Drain(gracePeriod) {
		logger.Info("all registrations completed")
	}
}

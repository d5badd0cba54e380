package main

import (
	"context"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/strem2jelly/telegram-media-bridge/internal/app"
	tmbbot "github.com/strem2jelly/telegram-media-bridge/internal/bot"
	tmbconfig "github.com/strem2jelly/telegram-media-bridge/internal/config"
	"github.com/strem2jelly/telegram-media-bridge/internal/database"
	"github.com/strem2jelly/telegram-media-bridge/internal/downloader"
	"github.com/strem2jelly/telegram-media-bridge/internal/folders"
	"github.com/strem2jelly/telegram-media-bridge/internal/handlers"
	"github.com/strem2jelly/telegram-media-bridge/internal/jellyfin"
	"github.com/strem2jelly/telegram-media-bridge/internal/lang"
	"github.com/strem2jelly/telegram-media-bridge/internal/logutils"
	"github.com/strem2jelly/telegram-media-bridge/internal/session"
	"github.com/strem2jelly/telegram-media-bridge/internal/userclient"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	config, err := tmbconfig.NewConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	logutils.Setup(config.LogLevel)
	lang.SetupLang(config)

	registry := folders.NewRegistry(config.MediaPath)
	if err := registry.EnsureDefault(); err != nil {
		logrus.WithError(err).Fatal("Failed to create default media folder")
	}

	db := database.NewDatabase()
	if err := db.Init(config); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize database")
	}

	botInstance, err := tmbbot.InitBot(config)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize bot")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	userClient := userclient.New(config, botInstance.Api.Self.UserName)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return userClient.Run(ctx)
	})

	if err := userClient.WaitReady(ctx); err != nil {
		logrus.WithError(err).Fatal("User session authorization failed")
	}

	library := jellyfin.NewClient(config.JellyfinURL, config.JellyfinAPIKey, config.JellyfinUserID)
	orchestrator := downloader.New(botInstance, db, library, userClient, config)

	application := &app.App{
		Config:    config,
		Bot:       botInstance,
		Sessions:  session.NewManager(),
		Folders:   registry,
		DB:        db,
		Downloads: orchestrator,
	}

	g.Go(func() error {
		runUpdateLoop(ctx, application, botInstance)
		return nil
	})

	logrus.Info("Bot is running")
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logrus.WithError(err).Fatal("Bot stopped unexpectedly")
	}
	logrus.Info("Shutting down")
}

func runUpdateLoop(ctx context.Context, application *app.App, botInstance *tmbbot.Bot) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := botInstance.Api.GetUpdatesChan(updateConfig)

	for {
		select {
		case <-ctx.Done():
			botInstance.Api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go handlers.Router(application, update)
		}
	}
}

package main

import (
	"os"
	"os/signal"
	"syscall"

	"katalog/internal/config"
	"katalog/internal/logging"

	"github.com/spf13/viper"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		bootLog := logging.New("info", false, os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(cfg.LogLevel, cfg.LogPretty, os.Stdout)

	// --- Application ---
	app, err := NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}

	if err := app.StartEventAudit(); err != nil {
		log.Error().Err(err).Msg("failed to start product event consumer")
	}

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Str("addr", cfg.AppPort).Str("prefix", cfg.RoutePrefix).Msg("starting server")
		if err := app.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Fiber.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	if err := app.Close(); err != nil {
		log.Error().Err(err).Msg("error releasing resources")
	}
	log.Info().Msg("server gracefully stopped")
}

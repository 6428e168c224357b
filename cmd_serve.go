package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"pmfolio/web/handlers"
	"pmfolio/web/server"
	"pmfolio/web/views"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			a.log.WithError(err).Error("Failed to close store")
		}
	}()

	renderer, err := views.New()
	if err != nil {
		return err
	}

	sentryEnabled := false
	if a.cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              a.cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      a.cfg.Env,
		}); err != nil {
			a.log.WithError(err).Error("Sentry init failed")
		} else {
			sentryEnabled = true
			defer sentry.Flush(2 * time.Second)
		}
	}

	h := handlers.NewApplicationHandler(a.store, a.assembler, renderer, a.log)
	app := server.New(h, server.Options{
		Logger:         a.log,
		AllowedOrigins: a.cfg.AllowedOrigins,
		Prometheus:     fiberprometheus.New("pmfolio"),
		Sentry:         sentryEnabled,
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		a.log.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			a.log.WithError(err).Error("Server shutdown error")
		}
	}()

	a.log.WithField("port", a.cfg.Port).Info("Starting pmfolio")
	return app.Listen(":" + a.cfg.Port)
}

package main

import (
	"context"
	"errors"
	"os"
	"time"

	"financas/internal/amqp"
	"financas/internal/cli"
	gsheet "financas/internal/sheets/google"
	"financas/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting sync-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if err := cfg.ValidateSheets(); err != nil {
		logger.Error("Sheets configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the sync-worker")
		os.Exit(1)
	}

	store := cli.OpenStore(logger, cfg)
	defer store.Close()

	sheetsClient, err := gsheet.New(context.Background(), gsheet.Options{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		OAuthClientJSON: cfg.GoogleOAuthClientJSON,
		OAuthClientFile: cfg.GoogleOAuthClientFile,
		OAuthTokenJSON:  cfg.GoogleOAuthTokenJSON,
		OAuthTokenFile:  cfg.GoogleOAuthTokenFile,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	// Bound in-flight deliveries so a backlog drains in batches instead
	// of flooding the Sheets API.
	if err := amqpClient.SetPrefetch(cfg.SyncBatchSize); err != nil {
		logger.Warn("Failed to set consumer prefetch", "error", err)
	}

	syncWorker := worker.NewSyncWorker(store, store, sheetsClient, sheetsClient, cfg.UserID)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	// Consume until shutdown. A broken broker connection triggers a
	// reconnect with backoff rather than a crash; restarts are paced by
	// the sync interval.
	go func() {
		for {
			err := amqpClient.ConsumeTransactionEvents(ctx, func(ev *amqp.TransactionEvent) error {
				return syncWorker.HandleEvent(ctx, ev)
			})
			if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}

			logger.Error("Event consumption failed, reconnecting", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(cfg.SyncInterval):
			}
			if err := amqpClient.Reconnect(ctx); err != nil {
				logger.Error("Reconnect aborted", "error", err)
				return
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Sync-worker stopped gracefully")
}

package main

import (
	"time"

	"financas/internal/amqp"
	"financas/internal/auth"
	"financas/internal/cli"
	"financas/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting recurring-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	store := cli.OpenStore(logger, cfg)
	defer store.Close()

	// AMQP is optional; created occurrences still land in storage, they
	// just do not reach the sheets backup without a broker.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
			logger.Info("AMQP client initialized - occurrences will sync via sync-worker")
		}
	} else {
		logger.Info("AMQP disabled - occurrences will not sync to the sheets backup")
	}

	provider := auth.NewStatic(cfg.UserID, cfg.UserEmail)
	transactions := services.NewTransactionService(store, provider, amqpClient, nil)
	processor := services.NewRecurringProcessor(store, transactions, cfg.UserID)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	interval := cfg.RecurringProcessorInterval
	logger.Info("Recurring charge processor configured",
		"interval", interval,
		"backend", cfg.StorageBackend)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run once on startup so a stopped worker catches up immediately.
	logger.Info("Running initial recurring charge processing...")
	if count, err := processor.ProcessDue(ctx, time.Now()); err != nil {
		logger.Error("Initial processing failed", "error", err)
	} else {
		logger.Info("Initial processing complete", "occurrences_created", count)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				count, err := processor.ProcessDue(ctx, now)
				if err != nil {
					logger.Error("Periodic processing failed", "error", err)
					continue
				}
				logger.Info("Periodic processing complete",
					"occurrences_created", count,
					"next_check", now.Add(interval).Format("15:04:05"))
			}
		}
	}()

	cli.WaitForShutdown(ctx, done)
	logger.Info("Recurring-worker stopped gracefully")
}

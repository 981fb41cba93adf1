package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"tally/internal/amqp"
	"tally/internal/cli"
	"tally/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()

	logger.Info("Starting tally-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	history := cli.InitHistory(logger, cfg.SQLiteDBPath)
	defer history.Close()

	// AMQP is optional: without it the worker refreshes on the interval only.
	var bus *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		bus, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer bus.Close()
		logger.Info("Initialized AMQP refresh bus",
			"exchange", cfg.AMQPExchange,
			"queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - refreshing on interval only", "interval", cfg.RefreshInterval)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := worker.NewRefreshWorker(cfg, history, bus)

	logger.Info("Worker running",
		"backend", cfg.InputBackend,
		"artifact", cfg.OutputFile,
		"interval", cfg.RefreshInterval)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

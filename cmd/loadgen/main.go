package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"dispatch/internal/loadgen"

	"github.com/labstack/gommon/log"
)

func main() {
	var config loadgen.Config
	flag.StringVar(&config.Endpoint, "endpoint", "http://localhost:8080", "base address of the dispatch service")
	flag.StringVar(&config.Username, "username", os.Getenv("API_USERNAME"), "basic auth username")
	flag.StringVar(&config.Password, "password", os.Getenv("API_PASSWORD"), "basic auth password")
	flag.IntVar(&config.Orders, "orders", 100, "number of orders to trigger")
	flag.IntVar(&config.Concurrency, "concurrency", 10, "maximum triggers in flight")
	flag.DurationVar(&config.Timeout, "timeout", 30*time.Second, "timeout of one request")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	generator, err := loadgen.NewGenerator(config, nil, logger)
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := generator.Run(ctx)
	if err != nil {
		log.Fatalf("Load run aborted: %v", err)
	}

	logger.Info("Load run finished",
		"total", summary.Total,
		"accepted", summary.Accepted,
		"failed", summary.Failed,
		"success_rate_pct", summary.SuccessRate(),
		"duration", summary.Duration.Round(time.Millisecond),
		"orders_per_second", summary.Throughput(),
	)
}

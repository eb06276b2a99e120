// Package loadgen drives the dispatch trigger endpoint with random orders to
// measure how the service holds up under concurrent load.
package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	healthPath  = "/health"
	triggerPath = "/api/v1/dispatches"
)

var (
	DefaultRegions       = []string{"HCM", "HN", "DN"}
	DefaultCustomerNames = []string{
		"Nguyen Van A", "Tran Thi B", "Le Van C",
		"Pham Thi D", "Hoang Van E", "Vo Thi F",
	}
)

type Config struct {
	// Endpoint is the base address of the dispatch service.
	Endpoint    string
	Username    string
	Password    string
	Orders      int
	Concurrency int
	Timeout     time.Duration
}

func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Endpoint) == "":
		return errs.NewValueIsRequiredError("endpoint")
	case c.Orders < 1:
		return errs.NewValueIsInvalidErrorWithCause("orders", fmt.Errorf("must be positive, got %d", c.Orders))
	case c.Concurrency < 1:
		return errs.NewValueIsInvalidErrorWithCause("concurrency", fmt.Errorf("must be positive, got %d", c.Concurrency))
	}
	return nil
}

// Summary reports one load run.
type Summary struct {
	Total    int
	Accepted int
	Failed   int
	Duration time.Duration
}

func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Total) * 100
}

// Throughput is the number of triggers sent per second.
func (s Summary) Throughput() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Total) / s.Duration.Seconds()
}

type Generator struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func NewGenerator(config Config, httpClient *http.Client, logger *slog.Logger) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	config.Endpoint = strings.TrimRight(config.Endpoint, "/")
	return &Generator{
		config:     config,
		httpClient: httpClient,
		logger:     logger.With("component", "loadgen"),
		now:        time.Now,
	}, nil
}

// CheckHealth fails unless the service answers its health endpoint with 200.
func (g *Generator) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.config.Endpoint+healthPath, nil)
	if err != nil {
		return err
	}
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// Run checks health, then sends Orders triggers with at most Concurrency in
// flight. A failed trigger is counted, not returned.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	if err := g.CheckHealth(ctx); err != nil {
		return Summary{}, fmt.Errorf("dispatch service is not reachable: %w", err)
	}

	g.logger.InfoContext(ctx, "Starting load run", "orders", g.config.Orders, "concurrency", g.config.Concurrency)

	var accepted, failed atomic.Int64
	start := g.now()

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(g.config.Concurrency)
	for range g.config.Orders {
		group.Go(func() error {
			if err := g.trigger(groupCtx, g.randomOrder()); err != nil {
				failed.Add(1)
				g.logger.ErrorContext(groupCtx, "Trigger failed", "error", err)
				return nil
			}
			accepted.Add(1)
			return nil
		})
	}
	_ = group.Wait()

	return Summary{
		Total:    g.config.Orders,
		Accepted: int(accepted.Load()),
		Failed:   int(failed.Load()),
		Duration: g.now().Sub(start),
	}, nil
}

func (g *Generator) randomOrder() map[string]any {
	return map[string]any{
		order.FieldOrderID:      uuid.NewString(),
		order.FieldCustomerName: DefaultCustomerNames[rand.IntN(len(DefaultCustomerNames))],
		order.FieldRegion:       DefaultRegions[rand.IntN(len(DefaultRegions))],
		order.FieldTimestamp:    g.now().UTC().Format(time.RFC3339),
	}
}

func (g *Generator) trigger(ctx context.Context, conf map[string]any) error {
	body, err := json.Marshal(map[string]any{"conf": conf})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.Endpoint+triggerPath, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	g.authorize(req)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order %v: %w", conf[order.FieldOrderID], err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("order %v: status %d: %s", conf[order.FieldOrderID], resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func (g *Generator) authorize(req *http.Request) {
	if g.config.Username != "" || g.config.Password != "" {
		req.SetBasicAuth(g.config.Username, g.config.Password)
	}
}

package cmd

import (
	"log/slog"
	"net/http"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/metrics"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/warehousehttp"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/generated/servers"
	"dispatch/internal/jobs"
	"dispatch/internal/orchestrator"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters, handlers and the orchestrator from one
// Config. It owns the orchestrator and the outcome publisher; Close releases
// both.
type CompositionRoot struct {
	config     Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	registry     warehouse.Registry
	warehouses   *warehousehttp.Client
	promRegistry *prometheus.Registry
	metrics      *metrics.DispatchMetrics
	publisher    ports.OutcomePublisher
	closePublish func() error

	orchestrator *orchestrator.Orchestrator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	registry, err := warehouse.ParseRegistry(config.WarehouseNodes)
	if err != nil {
		return nil, err
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &CompositionRoot{
		config:       config,
		logger:       logger,
		gormDB:       gormDB,
		uowFactory:   postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:     registry,
		warehouses:   warehousehttp.NewClient(&http.Client{}),
		promRegistry: promRegistry,
		metrics:      metrics.NewDispatchMetrics(promRegistry),
	}

	if err = c.createPublisher(); err != nil {
		return nil, err
	}

	ingest, err := c.CreateIngestOrderCommandHandler()
	if err != nil {
		return nil, err
	}

	c.orchestrator, err = orchestrator.New(
		ingest,
		c.CreateAssignWarehouseCommandHandler(),
		c.CreateSubmitOrderCommandHandler(),
		c.CreateSaveDispatchRunCommandHandler(),
		c.publisher,
		c.metrics,
		config.RetryPolicy(),
		logger,
	)
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) createPublisher() error {
	brokers := c.config.KafkaBrokers()
	if len(brokers) == 0 {
		c.publisher = kafka.NopOutcomePublisher{}
		c.closePublish = func() error { return nil }
		c.logger.Info("Outcome events disabled, KAFKA_HOST is empty")
		return nil
	}

	publisher, err := kafka.NewOutcomePublisher(brokers, c.config.KafkaDispatchOutcomeTopic)
	if err != nil {
		return err
	}

	c.publisher = publisher
	c.closePublish = publisher.Close
	return nil
}

func (c *CompositionRoot) CreateIngestOrderCommandHandler() (commands.IngestOrderCommandHandler, error) {
	return commands.NewIngestOrderCommandHandler(c.config.DefaultRegion, nil, c.logger)
}

func (c *CompositionRoot) CreateAssignWarehouseCommandHandler() commands.AssignWarehouseCommandHandler {
	selector := services.NewWarehouseSelector(c.warehouses, services.NewRandomizer(), c.config.HealthProbeTimeout, c.logger)
	return commands.NewAssignWarehouseCommandHandler(c.registry, selector, c.metrics)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	submitter := services.NewOrderSubmitter(c.warehouses, c.config.SubmitTimeout)
	return commands.NewSubmitOrderCommandHandler(c.registry, submitter, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateSaveDispatchRunCommandHandler() commands.SaveDispatchRunCommandHandler {
	return commands.NewSaveDispatchRunCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateGetDispatchRunQueryHandler() queries.GetDispatchRunQueryHandler {
	return queries.NewGetDispatchRunQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDispatchRunsQueryHandler() queries.ListDispatchRunsQueryHandler {
	return queries.NewListDispatchRunsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.orchestrator, c.config.SelfTestSchedule, c.logger)
}

// CreateRouter builds the echo instance serving the API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	spec, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	server := httpin.NewServer(
		c.orchestrator,
		c.CreateGetDispatchRunQueryHandler(),
		c.CreateListDispatchRunsQueryHandler(),
		c.registry,
	)

	return httpin.NewRouter(server, httpin.RouterConfig{
		Username: c.config.APIUsername,
		Password: c.config.APIPassword,
		Gatherer: c.promRegistry,
		Spec:     spec,
		Logger:   c.logger,
	})
}

func (c *CompositionRoot) Orchestrator() *orchestrator.Orchestrator {
	return c.orchestrator
}

func (c *CompositionRoot) Registry() warehouse.Registry {
	return c.registry
}

// Close stops background runs and flushes the outcome publisher.
func (c *CompositionRoot) Close() error {
	c.orchestrator.Shutdown()
	return c.closePublish()
}

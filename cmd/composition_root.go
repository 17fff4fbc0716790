package cmd

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	adapterhttp "github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/in/http"
	inkafka "github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/in/kafka"
	outkafka "github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/kafka"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/postgres"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/workflowengine"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/commands"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/application/usecases/queries"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/jobs"

	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

// CompositionRoot wires adapters and use cases. It owns the long-lived
// infrastructure: the database handle, the Kafka writer and the local
// workflow engine.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  *outkafka.EventPublisher
	engine     *workflowengine.LocalEngine
	logger     *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) *CompositionRoot {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	writer := &kafka.Writer{
		Addr:     kafka.TCP(configs.KafkaHost),
		Topic:    configs.KafkaStageEventsTopic,
		Balancer: &kafka.LeastBytes{},
	}

	root := &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  outkafka.NewEventPublisher(writer),
		logger:     logger,
	}

	root.engine = workflowengine.NewLocalEngine(
		root.CreateStartStageCommandHandler(),
		root.CreateRunStageCommandHandler(),
		root.CreateCompleteStageCommandHandler(),
		root.CreateFinishWorkflowCommandHandler(),
		stageDwell(configs.StageDwellSeconds),
		logger,
	)

	return root
}

// Logger returns the application logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// WorkflowEngine returns the in-process execution engine.
func (c *CompositionRoot) WorkflowEngine() *workflowengine.LocalEngine {
	return c.engine
}

func (c *CompositionRoot) CreateStartStageCommandHandler() commands.StartStageCommandHandler {
	return commands.NewStartStageCommandHandler(c.createUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteStageCommandHandler() commands.CompleteStageCommandHandler {
	return commands.NewCompleteStageCommandHandler(c.createUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRunStageCommandHandler() commands.RunStageCommandHandler {
	return commands.NewRunStageCommandHandler(c.publisher, c.logger)
}

func (c *CompositionRoot) CreateFinishWorkflowCommandHandler() commands.FinishWorkflowCommandHandler {
	return commands.NewFinishWorkflowCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateStartWorkflowCommandHandler() commands.StartWorkflowCommandHandler {
	return commands.NewStartWorkflowCommandHandler(c.createUoWFactory(), c.publisher, c.engine, c.logger)
}

func (c *CompositionRoot) CreateReconcileOrdersCommandHandler() commands.ReconcileOrdersCommandHandler {
	return commands.NewReconcileOrdersCommandHandler(c.createUoWFactory(), c.logger)
}

func (c *CompositionRoot) CreateGetDashboardSummaryQueryHandler() queries.GetDashboardSummaryQueryHandler {
	return queries.NewGetDashboardSummaryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDashboardMetricsQueryHandler() queries.GetDashboardMetricsQueryHandler {
	return queries.NewGetDashboardMetricsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the HTTP facade over the command and query
// handlers.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	return adapterhttp.NewServer(
		c.CreateStartStageCommandHandler(),
		c.CreateCompleteStageCommandHandler(),
		c.CreateStartWorkflowCommandHandler(),
		c.CreateGetDashboardSummaryQueryHandler(),
		c.CreateGetDashboardMetricsQueryHandler(),
		c.CreateGetOrdersQueryHandler(),
	)
}

// CreateOrderCreatedConsumer builds the intake consumer on its own reader.
func (c *CompositionRoot) CreateOrderCreatedConsumer(configs Config) *inkafka.OrderCreatedConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{configs.KafkaHost},
		GroupID: configs.KafkaConsumerGroup,
		Topic:   configs.KafkaOrderCreatedTopic,
	})

	return inkafka.NewOrderCreatedConsumer(
		reader,
		c.CreateCreateOrderCommandHandler(),
		c.CreateStartWorkflowCommandHandler(),
		c.logger,
	)
}

// CreateJobManager builds the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateReconcileOrdersCommandHandler(), c.logger)
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// stageDwell parses the configured per-stage dwell, defaulting to 5 seconds.
func stageDwell(raw string) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 5 * time.Second
	}
	return time.Duration(seconds) * time.Second
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

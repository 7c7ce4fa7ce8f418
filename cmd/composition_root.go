package cmd

import (
	"log/slog"

	orderhttp "orders/internal/adapters/in/http"
	kafkain "orders/internal/adapters/in/kafka"
	"orders/internal/adapters/out/email"
	kafkaout "orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/payment"
	"orders/internal/adapters/out/postgres"
	"orders/internal/adapters/out/workflow/local"
	"orders/internal/adapters/out/workflow/temporal"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/application/workflow"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, cfg.OrdersTable),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.CreateGorm()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler(workflows ports.WorkflowStarter) commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.orderUoWFactory(), workflows)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.cfg.OrdersTable)
}

func (c *CompositionRoot) CreateGetStalledOrdersQueryHandler() queries.GetStalledOrdersQueryHandler {
	return queries.NewGetStalledOrdersQueryHandler(c.gormDB, c.cfg.OrdersTable)
}

func (c *CompositionRoot) CreatePaymentGateway() (*payment.SimulatedGateway, error) {
	return payment.NewSimulatedGateway(payment.Config{
		DeclineAbove: c.cfg.PaymentDeclineAbove,
		FailureRate:  c.cfg.PaymentFailureRate,
	}, c.logger)
}

func (c *CompositionRoot) CreateNotificationPublisher() (*kafkaout.NotificationPublisher, error) {
	return kafkaout.NewNotificationPublisher(c.cfg.KafkaBrokers(), c.cfg.KafkaNotificationsTopic, c.logger)
}

func (c *CompositionRoot) CreateNotificationSubscriber() (*kafkain.NotificationSubscriber, error) {
	return kafkain.NewNotificationSubscriber(
		c.cfg.KafkaBrokers(),
		c.cfg.KafkaConsumerGroup,
		c.cfg.KafkaNotificationsTopic,
		email.NewLogSender(c.logger),
		c.logger,
	)
}

// CreateFulfillmentSteps wires the step implementations shared by both workflow engines.
func (c *CompositionRoot) CreateFulfillmentSteps(publisher ports.NotificationPublisher) (*workflow.Steps, error) {
	gateway, err := c.CreatePaymentGateway()
	if err != nil {
		return nil, err
	}
	return workflow.NewSteps(gateway, c.CreateUpdateOrderStatusCommandHandler(), publisher, c.logger)
}

func (c *CompositionRoot) CreateLocalEngine(steps *workflow.Steps) (*local.Engine, error) {
	machine, err := workflow.NewMachine(steps, c.cfg.ChargeRetryPolicy(), c.logger)
	if err != nil {
		return nil, err
	}
	return local.NewEngine(machine, c.cfg.WorkflowMaxConcurrency, c.logger)
}

// TemporalEngine bundles the client, the starter used by the API and the worker
// executing fulfillment in this process.
type TemporalEngine struct {
	Client  client.Client
	Starter *temporal.Starter
	Worker  worker.Worker
}

func (c *CompositionRoot) CreateTemporalEngine(steps *workflow.Steps) (*TemporalEngine, error) {
	wf, err := temporal.NewWorkflow(c.cfg.ChargeRetryPolicy())
	if err != nil {
		return nil, err
	}
	activities, err := temporal.NewActivities(steps)
	if err != nil {
		return nil, err
	}

	tc, err := temporal.Dial(c.cfg.TemporalHost, c.cfg.TemporalNamespace, c.logger)
	if err != nil {
		return nil, err
	}
	starter, err := temporal.NewStarter(tc, c.cfg.TemporalTaskQueue, c.logger)
	if err != nil {
		tc.Close()
		return nil, err
	}

	return &TemporalEngine{
		Client:  tc,
		Starter: starter,
		Worker:  temporal.NewWorker(tc, c.cfg.TemporalTaskQueue, wf, activities),
	}, nil
}

func (c *CompositionRoot) CreateRouter(workflows ports.WorkflowStarter) (*echo.Echo, error) {
	authenticator, err := orderhttp.NewJWTAuthenticator(c.cfg.AuthJWTSecret, c.cfg.AuthJWTIssuer)
	if err != nil {
		return nil, err
	}
	server := orderhttp.NewServer(
		c.CreateSubmitOrderCommandHandler(workflows),
		c.CreateListOrdersQueryHandler(),
		c.logger,
	)
	return orderhttp.NewRouter(server, authenticator, c.logger)
}

// CreateJobManager registers the reconciliation job when a schedule is configured.
func (c *CompositionRoot) CreateJobManager(workflows ports.WorkflowStarter) (*jobs.JobManager, error) {
	manager := jobs.NewJobManager()
	if c.cfg.ReconcileSchedule == "" {
		return manager, nil
	}

	job, err := jobs.NewReconciliationJob(
		c.CreateGetStalledOrdersQueryHandler(),
		workflows,
		c.cfg.ReconcileSchedule,
		c.cfg.ReconcileStaleAfter,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	manager.Register("reconciliation", job)
	return manager, nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/postgres/orderrepo"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(tenantID, orderID string) *order.Order {
	key, err := kernel.NewOrderKey(tenantID, orderID)
	suite.Require().NoError(err)

	item, err := order.NewItem("Pollo a la brasa", 2)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(key, "C-42", []order.Item{item}, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	aggregate := suite.newOrder("pardos", "O-1001")

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.Key())
	suite.Require().NoError(err)

	suite.True(loaded.Key().IsEqual(aggregate.Key()))
	suite.Equal("C-42", loaded.CustomerID())
	suite.Equal(order.StageUnknown, loaded.CurrentStage())
	suite.Equal(order.WorkflowNotStarted, loaded.Status())
	suite.Require().Len(loaded.Items(), 1)
	suite.Equal("Pollo a la brasa", loaded.Items()[0].ProductName())
	suite.Equal(2, loaded.Items()[0].Quantity())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateKeyRejected() {
	ctx := context.Background()
	aggregate := suite.newOrder("pardos", "O-1001")

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	duplicate := suite.newOrder("pardos", "O-1001")
	err := suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_SameOrderIDInOtherTenant() {
	ctx := context.Background()

	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("pardos", "O-1001")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("lachoza", "O-1001")))

	key, err := kernel.NewOrderKey("lachoza", "O-1001")
	suite.Require().NoError(err)

	loaded, loadErr := suite.repository.Get(ctx, key)
	suite.Require().NoError(loadErr)
	suite.Equal("lachoza", loaded.Key().TenantID().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	key, err := kernel.NewOrderKey("pardos", "O-404")
	suite.Require().NoError(err)

	_, err = suite.repository.Get(context.Background(), key)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsWorkflowProgress() {
	ctx := context.Background()
	aggregate := suite.newOrder("pardos", "O-1001")
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	now := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(aggregate.StartWorkflow("pardos-O-1001-deadbeef", now))
	suite.Require().NoError(aggregate.AdvanceStage(order.StageCooking, now))
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	loaded, err := suite.repository.Get(ctx, aggregate.Key())
	suite.Require().NoError(err)
	suite.Equal(order.WorkflowStarted, loaded.Status())
	suite.Equal(order.StageCooking, loaded.CurrentStage())
	suite.Equal("pardos-O-1001-deadbeef", loaded.ExecutionRef())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	aggregate := suite.newOrder("pardos", "O-404")
	err := suite.repository.Update(context.Background(), aggregate)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInWorkflowStartedStatus() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	running := suite.newOrder("pardos", "O-1")
	suite.Require().NoError(running.StartWorkflow("pardos-O-1-deadbeef", now))
	suite.Require().NoError(suite.repository.Add(ctx, running))

	idle := suite.newOrder("pardos", "O-2")
	suite.Require().NoError(suite.repository.Add(ctx, idle))

	otherTenant := suite.newOrder("lachoza", "O-3")
	suite.Require().NoError(otherTenant.StartWorkflow("lachoza-O-3-deadbeef", now))
	suite.Require().NoError(suite.repository.Add(ctx, otherTenant))

	result, err := suite.repository.GetAllInWorkflowStartedStatus(ctx)
	suite.Require().NoError(err)
	suite.Len(result, 2)
	for _, aggregate := range result {
		suite.Equal(order.WorkflowStarted, aggregate.Status())
	}
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}

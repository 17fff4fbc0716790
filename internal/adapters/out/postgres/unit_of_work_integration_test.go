package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/postgres"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/postgres/orderrepo"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/adapters/out/postgres/stagerecordrepo"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/kernel"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/order"
	"github.com/GabrielFrisancho/pardos-restaurante/internal/core/domain/model/stagerecord"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the stage history and the
// order pointer commit or roll back together.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	key       kernel.OrderKey
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &stagerecordrepo.StageRecordDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)

	suite.key, err = kernel.NewOrderKey("pardos", "O-1001")
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stage_records").Error)

	now := time.Now().UTC().Truncate(time.Microsecond)
	aggregate, err := order.NewOrder(suite.key, "C-42", nil, now)
	suite.Require().NoError(err)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db).Add(context.Background(), aggregate))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsRecordAndPointerTogether() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	record, err := stagerecord.NewRecord(suite.key, order.StageCooking, "", now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.StageRecordRepository().Add(ctx, record))

	aggregate, err := uow.OrderRepository().Get(ctx, suite.key)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AdvanceStage(order.StageCooking, now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))

	suite.Require().NoError(uow.Commit(ctx))

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, suite.key)
	suite.Require().NoError(err)
	suite.Equal(order.StageCooking, loaded.CurrentStage())

	history, err := stagerecordrepo.NewGormStageRecordRepository(suite.db).GetHistory(ctx, suite.key)
	suite.Require().NoError(err)
	suite.Len(history, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsRecordAndPointerTogether() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	record, err := stagerecord.NewRecord(suite.key, order.StageCooking, "", now)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.StageRecordRepository().Add(ctx, record))

	aggregate, err := uow.OrderRepository().Get(ctx, suite.key)
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AdvanceStage(order.StageCooking, now))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, aggregate))

	suite.Require().NoError(uow.Rollback(ctx))

	loaded, err := orderrepo.NewGormOrderRepository(suite.db).Get(ctx, suite.key)
	suite.Require().NoError(err)
	suite.Equal(order.StageUnknown, loaded.CurrentStage())

	history, err := stagerecordrepo.NewGormStageRecordRepository(suite.db).GetHistory(ctx, suite.key)
	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackWithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.Require().ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

package service_test

import (
	"context"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aliantdev/orderflow/internal/adapter/config"
	"github.com/aliantdev/orderflow/internal/adapter/storage"
	"github.com/aliantdev/orderflow/internal/adapter/storage/repository"
	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/aliantdev/orderflow/internal/core/port"
	"github.com/aliantdev/orderflow/internal/core/port/mock"
	"github.com/aliantdev/orderflow/internal/core/service"
	"github.com/aliantdev/orderflow/internal/e2etest/testdb"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var dbtest *testdb.TestDBInstance

func setup() {
	var err error
	dbtest, err = testdb.NewTestDBInstance()
	if err != nil {
		log.Fatal(err)
	}
}
func shutdown() {
	if dbtest != nil {
		dbtest.Down()
	}
}

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	shutdown()
	os.Exit(code)
}

func getRepo() (port.Repository, error) {
	db, err := storage.NewDBStorage(context.Background(), &config.Database{DSN: dbtest.DSN})
	if err != nil {
		return nil, err
	}
	err = db.RunMigrations()
	if err != nil {
		return nil, err
	}
	repo, err := repository.NewRepository(db)
	if err != nil {
		return nil, err
	}

	return repo, nil
}

func createTestOrder(t *testing.T, repo port.Repository, login string) *domain.Order {
	t.Helper()

	ctx := context.Background()

	user, err := repo.CreateUser(ctx, &domain.User{Login: login, Password: "hash"})
	assert.NoError(t, err)

	svc, err := service.NewService(repo, nil, publisherStub{}, zap.NewNop())
	assert.NoError(t, err)

	order, err := svc.CreateOrder(ctx, user.ID, "Notebook", decimal.MustParse("100.00"))
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	return order
}

type publisherStub struct{}

func (publisherStub) Publish(ctx context.Context, event *domain.OrderCreatedEvent) error {
	return nil
}

func TestServiceDB_CreateOrderSurvivesPublishFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo, err := getRepo()
	assert.NoError(t, err)

	ctx := context.Background()

	user, err := repo.CreateUser(ctx, &domain.User{Login: "creator", Password: "hash"})
	assert.NoError(t, err)

	publisher := mock.NewMockEventPublisher(mockCtrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError)

	svc, err := service.NewService(repo, nil, publisher, zap.NewNop())
	assert.NoError(t, err)

	order, err := svc.CreateOrder(ctx, user.ID, "Notebook", decimal.MustParse("100.00"))
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)

	stored, err := repo.ReadOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, stored.Status)
}

func TestRepositoryDB_TransitionOrderStatus(t *testing.T) {
	repo, err := getRepo()
	assert.NoError(t, err)

	ctx := context.Background()
	order := createTestOrder(t, repo, "transition")

	affected, err := repo.TransitionOrderStatus(ctx, order.ID,
		domain.OrderStatusPending, domain.OrderStatusProcessed)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	stored, err := repo.ReadOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessed, stored.Status)

	// Second delivery of the same event finds nothing to do.
	affected, err = repo.TransitionOrderStatus(ctx, order.ID,
		domain.OrderStatusPending, domain.OrderStatusProcessed)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	stored, err = repo.ReadOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessed, stored.Status)
}

func TestRepositoryDB_TransitionUnknownOrder(t *testing.T) {
	repo, err := getRepo()
	assert.NoError(t, err)

	affected, err := repo.TransitionOrderStatus(context.Background(),
		"9e107d9d-3721-4b91-8a2e-000000000000",
		domain.OrderStatusPending, domain.OrderStatusProcessed)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}

func TestRepositoryDB_ConcurrentTransition(t *testing.T) {
	repo, err := getRepo()
	assert.NoError(t, err)

	ctx := context.Background()
	order := createTestOrder(t, repo, "concurrent")

	const replicas = 10
	var wins int64

	wg := sync.WaitGroup{}
	for i := 0; i < replicas; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := repo.TransitionOrderStatus(ctx, order.ID,
				domain.OrderStatusPending, domain.OrderStatusProcessed)
			assert.NoError(t, err)
			atomic.AddInt64(&wins, affected)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)

	stored, err := repo.ReadOrder(ctx, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessed, stored.Status)
}

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/aliantdev/orderflow/internal/adapter/auth"
	"github.com/aliantdev/orderflow/internal/core/domain"
	"github.com/aliantdev/orderflow/internal/core/port/mock"
	"github.com/aliantdev/orderflow/internal/core/service"
	"github.com/aliantdev/orderflow/internal/core/utils"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, publisher *mock.MockEventPublisher)

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userRegisterTest struct {
		name      string
		user      domain.User
		mock      prepareMocks
		expError  error
		expResult *domain.User
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Login:    "test",
		Password: hashedPass,
		ID:       1,
	}

	tests := []userRegisterTest{
		{
			name: "Register good",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&user, nil)
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{Login: user.Login, Password: "test"},
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			publisher := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, publisher)

			s, err := service.NewService(repo, ts, publisher, logger)
			assert.NoError(t, err)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type userLoginTest struct {
		name     string
		user     domain.User
		mock     prepareMocks
		expError error
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Login:    "test",
		Password: hashedPass,
		ID:       1,
	}

	tests := []userLoginTest{
		{
			name: "Login good",
			user: domain.User{Login: user.Login, Password: "test", ID: 1},
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name: "Password bad",
			user: domain.User{Login: user.Login, Password: "hacker"},
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name: "Login bad",
			user: domain.User{Login: "hacker", Password: "test"},
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "hacker").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts, err := auth.New()
			assert.NoError(t, err)

			publisher := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, publisher)

			s, err := service.NewService(repo, ts, publisher, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.user.Login, test.user.Password)
			assert.Equal(t, test.expError, err)

			if token != "" {
				payload, err := ts.VerifyToken(token)
				assert.NoError(t, err)
				assert.Equal(t, payload.UserID, test.user.ID)
			}
		})
	}
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	type createOrderTest struct {
		name        string
		description string
		amount      decimal.Decimal
		mock        prepareMocks
		expError    error
		expResult   *domain.Order
	}

	order := domain.Order{
		ID:          "2b7e5f1e-95a4-4c6f-9d3e-12f0a1b2c3d4",
		OwnerID:     1,
		Description: "Notebook",
		Amount:      decimal.MustParse("100.00"),
		Status:      domain.OrderStatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	tests := []createOrderTest{
		{
			name:        "Create good order",
			description: "Notebook",
			amount:      decimal.MustParse("100.00"),
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(&order, nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			expError:  nil,
			expResult: &order,
		},
		{
			name:        "Publish fails, order still created",
			description: "Notebook",
			amount:      decimal.MustParse("50.00"),
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(&order, nil)
				publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Return(assert.AnError)
			},
			expError:  nil,
			expResult: &order,
		},
		{
			name:        "Empty description",
			description: "   ",
			amount:      decimal.MustParse("100.00"),
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
			},
			expError:  domain.ErrOrderEmptyDescription,
			expResult: nil,
		},
		{
			name:        "Negative amount",
			description: "Notebook",
			amount:      decimal.MustParse("-1.00"),
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
			},
			expError:  domain.ErrOrderNegativeAmount,
			expResult: nil,
		},
		{
			name:        "Store error",
			description: "Notebook",
			amount:      decimal.MustParse("100.00"),
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).
					Return(nil, domain.ErrConflictingData)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			publisher := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, publisher)

			s, err := service.NewService(repo, ts, publisher, logger)
			assert.NoError(t, err)

			result, err := s.CreateOrder(context.Background(), 1, test.description, test.amount)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_GetOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger, _ := zap.NewProduction()

	order := domain.Order{
		ID:          "2b7e5f1e-95a4-4c6f-9d3e-12f0a1b2c3d4",
		OwnerID:     1,
		Description: "Notebook",
		Amount:      decimal.MustParse("100.00"),
		Status:      domain.OrderStatusPending,
	}

	type getOrderTest struct {
		name      string
		ownerID   uint64
		mock      prepareMocks
		expError  error
		expResult *domain.Order
	}

	tests := []getOrderTest{
		{
			name:    "Own order",
			ownerID: 1,
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(&order, nil)
			},
			expError:  nil,
			expResult: &order,
		},
		{
			name:    "Order of another user is hidden",
			ownerID: 2,
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(&order, nil)
			},
			expError:  domain.ErrDataNotFound,
			expResult: nil,
		},
		{
			name:    "Unknown order",
			ownerID: 1,
			mock: func(repo *mock.MockRepository, publisher *mock.MockEventPublisher) {
				repo.EXPECT().ReadOrder(gomock.Any(), order.ID).Return(nil, domain.ErrDataNotFound)
			},
			expError:  domain.ErrDataNotFound,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			publisher := mock.NewMockEventPublisher(mockCtrl)
			test.mock(repo, publisher)

			s, err := service.NewService(repo, ts, publisher, logger)
			assert.NoError(t, err)

			result, err := s.GetOrder(context.Background(), test.ownerID, order.ID)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

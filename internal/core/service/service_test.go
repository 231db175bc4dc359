package service_test

import (
	"context"
	"testing"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port/mock"
	"github.com/eshevtsov/washpoint/internal/core/service"
	"github.com/eshevtsov/washpoint/internal/core/utils"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository)

func newUserService(t *testing.T, mockCtrl *gomock.Controller, prepare prepareMocks) *service.Service {
	t.Helper()
	logger, _ := zap.NewProduction()

	repo := mock.NewMockRepository(mockCtrl)
	dir := mock.NewMockDirectory(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	devices := mock.NewMockDeviceGateway(mockCtrl)
	payments := mock.NewMockPaymentGateway(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)

	ts.EXPECT().CreateToken(gomock.Any()).Return("token", nil).AnyTimes()
	if prepare != nil {
		prepare(repo)
	}

	s, err := service.NewService(repo, dir, ts, devices, payments, notifier, "", logger)
	assert.NoError(t, err)
	return s
}

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Login:    "test",
		Password: hashedPass,
		ID:       1,
	}

	tests := []struct {
		name      string
		user      domain.User
		mock      prepareMocks
		expError  error
		expResult *domain.User
	}{
		{
			name: "Register good",
			user: domain.User{Login: user.Login, Password: hashedPass},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&user, nil)
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{Login: user.Login, Password: hashedPass},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newUserService(t, mockCtrl, test.mock)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Login:    "test",
		Password: hashedPass,
		ID:       1,
	}

	tests := []struct {
		name     string
		login    string
		password string
		mock     prepareMocks
		expError error
	}{
		{
			name:     "Login good",
			login:    user.Login,
			password: "test",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name:     "Password bad",
			login:    user.Login,
			password: "hacker",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), user.Login).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name:     "Login unknown",
			login:    "nobody",
			password: "test",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "nobody").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newUserService(t, mockCtrl, test.mock)

			token, err := s.LoginUser(context.Background(), test.login, test.password)

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestService_GetOrderByNoGuardsOwner(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	order := paidBalanceOrder()
	s := newUserService(t, mockCtrl, func(repo *mock.MockRepository) {
		repo.EXPECT().ReadOrderByNo(gomock.Any(), order.OrderNo).Return(&order, nil).Times(2)
	})

	got, err := s.GetOrderByNo(context.Background(), order.UserID, order.OrderNo)
	assert.NoError(t, err)
	assert.Equal(t, order.OrderNo, got.OrderNo)

	_, err = s.GetOrderByNo(context.Background(), order.UserID+1, order.OrderNo)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

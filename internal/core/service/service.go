package service

import (
	"context"
	"errors"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/eshevtsov/washpoint/internal/core/utils"
	"go.uber.org/zap"
)

type Service struct {
	repo         port.Repository
	dir          port.Directory
	tokenService port.TokenService
	devices      port.DeviceGateway
	payments     port.PaymentGateway
	notifier     port.Notifier
	notifyURL    string
	logger       *zap.Logger
}

func NewService(repo port.Repository, dir port.Directory, tokenService port.TokenService,
	devices port.DeviceGateway, payments port.PaymentGateway, notifier port.Notifier,
	notifyURL string, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		dir:          dir,
		tokenService: tokenService,
		devices:      devices,
		payments:     payments,
		notifier:     notifier,
		notifyURL:    notifyURL,
		logger:       logger,
	}, nil
}

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByLogin(ctx, user.Login)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, login string, password string) (string, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}

func (s *Service) GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, err
	}
	return list, nil
}

func (s *Service) GetOrderByNo(ctx context.Context, userID uint64, orderNo string) (*domain.Order, error) {
	order, err := s.repo.ReadOrderByNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *Service) GetUserBalance(ctx context.Context, userID uint64) (*domain.Balance, error) {
	balance, err := s.repo.ReadBalanceByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Get balance error", zap.Error(err))
		return nil, err
	}

	return balance, nil
}

// RecordDeviceReport persists an already-verified inbound status report
// and drops the cached directory entry for the device.
func (s *Service) RecordDeviceReport(ctx context.Context, report *domain.DeviceReport) error {
	if err := s.repo.UpdateDeviceReport(ctx, report); err != nil {
		s.logger.Error("Device report", zap.String("devid", report.DevID), zap.Error(err))
		return err
	}

	device, err := s.repo.ReadDeviceByDevID(ctx, report.DevID)
	if err != nil {
		return err
	}
	if err := s.dir.InvalidateDevice(ctx, device.ID); err != nil {
		s.logger.Error("Device cache invalidate", zap.Uint64("device", device.ID), zap.Error(err))
	}
	return nil
}

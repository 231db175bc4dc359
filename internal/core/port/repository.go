package port

import (
	"context"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (*domain.User, error)

	// Ledger
	ReadBalanceByUserID(ctx context.Context, userID uint64) (*domain.Balance, error)
	// UpdateBalanceByOrder runs fn over the user's ledger row and the order
	// inside one transaction. The order row is locked and must currently be
	// in one of the from statuses, otherwise ErrStatusConflict is returned
	// and nothing is written.
	UpdateBalanceByOrder(ctx context.Context, userID uint64, orderID uint64,
		from []domain.OrderStatus, fn UpdateBalanceFn) (*domain.Balance, error)

	// Directory
	ReadDevice(ctx context.Context, deviceID uint64) (*domain.Device, error)
	ReadDeviceByDevID(ctx context.Context, devID string) (*domain.Device, error)
	ReadMerchant(ctx context.Context, merchantID uint64) (*domain.Merchant, error)
	UpdateDeviceReport(ctx context.Context, report *domain.DeviceReport) error
	AddDeviceUsage(ctx context.Context, deviceID uint64, minutes int, revenue int64) error
	AddMerchantRevenue(ctx context.Context, merchantID uint64, amount int64) error

	// Order
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ReadOrder(ctx context.Context, orderID uint64) (*domain.Order, error)
	ReadOrderByNo(ctx context.Context, orderNo string) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	// UpdateOrderGuarded persists the order with compare-and-set semantics:
	// the row is written only while its stored status is one of from.
	UpdateOrderGuarded(ctx context.Context, order *domain.Order, from []domain.OrderStatus) (*domain.Order, error)
	ListStalledOrders(ctx context.Context, status domain.OrderStatus,
		ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error)
	// ListOverdueUsage returns IN_USE orders that ran past their device's
	// max usage minutes, oldest first.
	ListOverdueUsage(ctx context.Context, now time.Time, limit int) ([]*domain.Order, error)

	// Refund rules
	ListRefundRules(ctx context.Context) ([]*domain.RefundRule, error)
}

type UpdateBalanceFn func(*domain.Balance, *domain.Order) error

package port

import (
	"context"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

// CreateOrderResult carries the new order and, for gateway payments, the
// client parameters needed to complete the payment.
type CreateOrderResult struct {
	Order  *domain.Order
	Intent *domain.PaymentIntentResult
}

type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, login string, password string) (string, error)

	CreateOrder(ctx context.Context, userID, deviceID uint64,
		durationMinutes int, method domain.PaymentMethod) (*CreateOrderResult, error)
	PayWithBalance(ctx context.Context, userID, orderID uint64) (*domain.Order, error)
	ConfirmGatewayPayment(ctx context.Context, notice *domain.PaymentNotice) error
	StartDevice(ctx context.Context, orderID uint64) error
	Finish(ctx context.Context, orderID uint64, actualMinutes int) (*domain.Order, error)
	Cancel(ctx context.Context, orderID uint64, reason string) error
	Refund(ctx context.Context, orderID uint64, reason string) error
	RefundPartial(ctx context.Context, orderID uint64, amount int64, reason string) error

	GetOrderByNo(ctx context.Context, userID uint64, orderNo string) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	GetUserBalance(ctx context.Context, userID uint64) (*domain.Balance, error)
	RecordDeviceReport(ctx context.Context, report *domain.DeviceReport) error
}

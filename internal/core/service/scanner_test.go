package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port/mock"
	"github.com/eshevtsov/washpoint/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newScanner(t *testing.T, h *harness) *service.Scanner {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger, _ := zap.NewProduction()
	sc, err := service.NewScanner(h.svc, h.repo, mock.NewMockSweepLocker(ctrl), logger)
	require.NoError(t, err)
	return sc
}

func TestScanner_PaymentTimeoutCancels(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusPayPending
	order.PaidAmount = 0
	order.PaidAt = nil
	order.CreatedAt = time.Now().Add(-20 * time.Minute)
	h.setOrder(order)

	h.repo.EXPECT().ListStalledOrders(gomock.Any(), domain.OrderStatusPayPending,
		domain.StalledByCreatedAt, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status domain.OrderStatus,
			ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})

	sc.SweepPaymentTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusCancelled, h.order.Status)
	assert.Equal(t, "scanner: payment timeout", h.order.Remark)
}

func TestScanner_PaymentTimeoutSkipsFreshlyPaid(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	// listed as stalled, but a callback landed before the sweep got to it
	order := paidBalanceOrder()
	h.setOrder(order)

	stale := order
	stale.Status = domain.OrderStatusPayPending
	h.repo.EXPECT().ListStalledOrders(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.Order{&stale}, nil)

	sc.SweepPaymentTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusPaid, h.order.Status)
}

func TestScanner_PaymentTimeoutReconcilesGatewayOrder(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusPayPending
	order.PaymentMethod = domain.PaymentMethodGateway
	order.PaidAmount = 0
	order.BalanceUsed = 0
	order.GiftBalanceUsed = 0
	order.PaidAt = nil
	order.CreatedAt = time.Now().Add(-20 * time.Minute)
	h.setOrder(order)

	h.repo.EXPECT().ListStalledOrders(gomock.Any(), domain.OrderStatusPayPending,
		domain.StalledByCreatedAt, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status domain.OrderStatus,
			ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})
	// money actually arrived, the callback just never made it
	h.payments.EXPECT().QueryPayment(gomock.Any(), order.OrderNo).
		Return(&domain.PaymentNotice{
			OutTradeNo:    order.OrderNo,
			TransactionID: "txn-lost",
			Amount:        18000,
			TradeState:    domain.TradeStateSuccess,
		}, nil)
	h.devices.EXPECT().SendCommand(gomock.Any(), gomock.Any()).Return(nil)

	sc.SweepPaymentTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusInUse, h.order.Status)
	assert.Equal(t, "txn-lost", h.order.GatewayTxnID)
}

func TestScanner_StartTimeoutRetriesAndStarts(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusStarting
	h.setOrder(order)

	h.repo.EXPECT().ListStalledOrders(gomock.Any(), domain.OrderStatusStarting,
		domain.StalledByUpdatedAt, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status domain.OrderStatus,
			ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})
	h.devices.EXPECT().QueryStatus(gomock.Any(), "CW-003").
		Return(&domain.DeviceReport{DevID: "CW-003", Status: domain.DeviceStatusOnline}, nil)
	h.devices.EXPECT().SendCommand(gomock.Any(), gomock.Any()).Return(nil)

	sc.SweepStartTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusInUse, h.order.Status)
	assert.NotNil(t, h.order.StartAt)
}

func TestScanner_StartTimeoutConfirmsViaDeviceStatus(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusStarting
	commandAt := time.Now().Add(-10 * time.Minute)
	order.UpdatedAt = commandAt
	h.setOrder(order)

	h.repo.EXPECT().ListStalledOrders(gomock.Any(), domain.OrderStatusStarting,
		domain.StalledByUpdatedAt, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status domain.OrderStatus,
			ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})
	// device is already washing: the original command landed, no resend
	h.devices.EXPECT().QueryStatus(gomock.Any(), "CW-003").
		Return(&domain.DeviceReport{DevID: "CW-003", Status: domain.DeviceStatusWorking}, nil)

	sc.SweepStartTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusInUse, h.order.Status)
	// billing runs from the original start command, not from the sweep
	require.NotNil(t, h.order.StartAt)
	assert.True(t, h.order.StartAt.Equal(commandAt))
}

func TestScanner_StartTimeoutRefundsAfterFailedRetry(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusStarting
	h.setOrder(order)
	h.balance = domain.Balance{UserID: 7, Balance: 7000, Gift: 0}

	h.repo.EXPECT().ListStalledOrders(gomock.Any(), domain.OrderStatusStarting,
		domain.StalledByUpdatedAt, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status domain.OrderStatus,
			ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})
	h.devices.EXPECT().QueryStatus(gomock.Any(), "CW-003").
		Return(nil, domain.ErrDeviceUnavailable)
	h.devices.EXPECT().SendCommand(gomock.Any(), gomock.Any()).
		Return(domain.ErrDeviceUnavailable)

	sc.SweepStartTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusClosed, h.order.Status)
	assert.Equal(t, int64(18000), h.order.RefundAmount)
	assert.Equal(t, int64(20000), h.balance.Balance)
	assert.Equal(t, int64(5000), h.balance.Gift)
}

func TestScanner_UsageTimeoutForcesFinish(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	// device cap is 120 minutes, the wash has been running for 150
	order := paidBalanceOrder()
	startAt := time.Now().Add(-150 * time.Minute)
	order.Status = domain.OrderStatusInUse
	order.StartAt = &startAt
	h.setOrder(order)

	h.repo.EXPECT().ListOverdueUsage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, now time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})
	h.devices.EXPECT().SendCommand(gomock.Any(), gomock.Any()).Return(nil)

	sc.SweepUsageTimeout(context.Background())

	assert.Equal(t, domain.OrderStatusDone, h.order.Status)
	assert.GreaterOrEqual(t, h.order.ActualMinutes, 150)
	// 90 overage minutes at 300 on top of the quoted 18000
	assert.GreaterOrEqual(t, h.order.Amount, int64(18000+90*300))
}

func TestScanner_SettlementTimeoutFlagsForReview(t *testing.T) {
	h := newHarness(t)
	sc := newScanner(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusSettling
	h.setOrder(order)

	h.repo.EXPECT().ListStalledOrders(gomock.Any(), domain.OrderStatusSettling,
		domain.StalledByUpdatedAt, gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, status domain.OrderStatus,
			ref domain.StalledRef, before time.Time, limit int) ([]*domain.Order, error) {
			c := h.order
			return []*domain.Order{&c}, nil
		})

	sc.SweepSettlementTimeout(context.Background())

	// status untouched, only flagged for an operator
	assert.Equal(t, domain.OrderStatusSettling, h.order.Status)
	assert.True(t, h.order.ManualReview)
	assert.Equal(t, "scanner: settlement stalled", h.order.Remark)
}

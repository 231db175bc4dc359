package service_test

import (
	"context"
	"testing"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port/mock"
	"github.com/eshevtsov/washpoint/internal/core/service"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine(t *testing.T, h *harness) *service.RefundEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	logger, _ := zap.NewProduction()
	e, err := service.NewRefundEngine(h.svc, h.repo, mock.NewMockSweepLocker(ctrl), logger)
	require.NoError(t, err)
	return e
}

func paidNeverStartedRule() *domain.RefundRule {
	return &domain.RefundRule{
		ID:               1,
		Name:             "paid-never-started",
		Priority:         10,
		Enabled:          true,
		Status:           domain.OrderStatusPaid,
		SinceField:       domain.StalledByPaidAt,
		ThresholdSeconds: 300,
		Action:           domain.RefundActionFull,
	}
}

func (h *harness) expectRuleCandidates(rule *domain.RefundRule, orders ...*domain.Order) {
	h.repo.EXPECT().ListStalledOrders(gomock.Any(), rule.Status,
		rule.SinceField, gomock.Any(), gomock.Any()).
		Return(orders, nil)
}

func TestRefundEngine_FullRefundRule(t *testing.T) {
	h := newHarness(t)
	e := newEngine(t, h)

	order := paidBalanceOrder()
	h.setOrder(order)
	h.balance = domain.Balance{UserID: 7, Balance: 7000, Gift: 0}

	rule := paidNeverStartedRule()
	h.repo.EXPECT().ListRefundRules(gomock.Any()).Return([]*domain.RefundRule{rule}, nil)
	h.expectRuleCandidates(rule, &order)

	e.Sweep(context.Background())

	assert.Equal(t, domain.OrderStatusClosed, h.order.Status)
	assert.Equal(t, int64(18000), h.order.RefundAmount)
	assert.Equal(t, int64(20000), h.balance.Balance)
	assert.Equal(t, int64(5000), h.balance.Gift)
}

func TestRefundEngine_FirstMatchWinsByPriority(t *testing.T) {
	h := newHarness(t)
	e := newEngine(t, h)

	order := paidBalanceOrder()
	h.setOrder(order)

	partial := &domain.RefundRule{
		ID:               2,
		Name:             "partial-first",
		Priority:         5,
		Enabled:          true,
		Status:           domain.OrderStatusPaid,
		SinceField:       domain.StalledByPaidAt,
		ThresholdSeconds: 60,
		Action:           domain.RefundActionPartial,
		Percent:          50,
	}
	full := paidNeverStartedRule()

	// declared out of priority order on purpose
	h.repo.EXPECT().ListRefundRules(gomock.Any()).
		Return([]*domain.RefundRule{full, partial}, nil)
	h.expectRuleCandidates(partial, &order)
	h.expectRuleCandidates(full, &order)

	e.Sweep(context.Background())

	// only the lower-priority-number rule fired: 50% of 18000
	assert.Equal(t, int64(9000), h.order.RefundAmount)
	assert.Equal(t, domain.OrderStatusClosed, h.order.Status)
}

func TestRefundEngine_SkipsDisabledAndGuardedStatuses(t *testing.T) {
	h := newHarness(t)
	e := newEngine(t, h)

	order := paidBalanceOrder()
	h.setOrder(order)

	disabled := paidNeverStartedRule()
	disabled.Enabled = false

	refunding := paidNeverStartedRule()
	refunding.ID = 3
	refunding.Name = "never-runs"
	refunding.Status = domain.OrderStatusRefunding

	h.repo.EXPECT().ListRefundRules(gomock.Any()).
		Return([]*domain.RefundRule{disabled, refunding}, nil)

	e.Sweep(context.Background())

	assert.Equal(t, domain.OrderStatusPaid, h.order.Status)
	assert.Equal(t, int64(0), h.order.RefundAmount)
}

func TestRefundEngine_FiltersByPaymentMethod(t *testing.T) {
	h := newHarness(t)
	e := newEngine(t, h)

	order := paidBalanceOrder()
	h.setOrder(order)

	rule := paidNeverStartedRule()
	rule.PaymentMethod = domain.PaymentMethodGateway

	h.repo.EXPECT().ListRefundRules(gomock.Any()).Return([]*domain.RefundRule{rule}, nil)
	h.expectRuleCandidates(rule, &order)

	e.Sweep(context.Background())

	// balance-paid order does not match a gateway-only rule
	assert.Equal(t, domain.OrderStatusPaid, h.order.Status)
}

func TestRefundEngine_ManualReviewActionCloses(t *testing.T) {
	h := newHarness(t)
	e := newEngine(t, h)

	order := paidBalanceOrder()
	order.Status = domain.OrderStatusSettling
	h.setOrder(order)

	rule := &domain.RefundRule{
		ID:               4,
		Name:             "settling-stalled",
		Priority:         30,
		Enabled:          true,
		Status:           domain.OrderStatusSettling,
		SinceField:       domain.StalledByUpdatedAt,
		ThresholdSeconds: 600,
		Action:           domain.RefundActionManualReview,
	}

	h.repo.EXPECT().ListRefundRules(gomock.Any()).Return([]*domain.RefundRule{rule}, nil)
	h.expectRuleCandidates(rule, &order)

	e.Sweep(context.Background())

	assert.Equal(t, domain.OrderStatusClosed, h.order.Status)
	assert.True(t, h.order.ManualReview)
	assert.Equal(t, "refund-engine: settling-stalled", h.order.Remark)
}

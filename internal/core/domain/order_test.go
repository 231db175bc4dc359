package domain_test

import (
	"testing"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	type transitionTest struct {
		name    string
		from    domain.OrderStatus
		to      domain.OrderStatus
		allowed bool
	}

	tests := []transitionTest{
		{"init to pay pending", domain.OrderStatusInit, domain.OrderStatusPayPending, true},
		{"init to paid", domain.OrderStatusInit, domain.OrderStatusPaid, true},
		{"init to cancelled", domain.OrderStatusInit, domain.OrderStatusCancelled, true},
		{"pay pending to paid", domain.OrderStatusPayPending, domain.OrderStatusPaid, true},
		{"pay pending to cancelled", domain.OrderStatusPayPending, domain.OrderStatusCancelled, true},
		{"paid to starting", domain.OrderStatusPaid, domain.OrderStatusStarting, true},
		{"paid to refunding", domain.OrderStatusPaid, domain.OrderStatusRefunding, true},
		{"starting to in use", domain.OrderStatusStarting, domain.OrderStatusInUse, true},
		{"starting to refunding", domain.OrderStatusStarting, domain.OrderStatusRefunding, true},
		{"in use to settling", domain.OrderStatusInUse, domain.OrderStatusSettling, true},
		{"in use to refunding", domain.OrderStatusInUse, domain.OrderStatusRefunding, true},
		{"settling to done", domain.OrderStatusSettling, domain.OrderStatusDone, true},
		{"refunding to closed", domain.OrderStatusRefunding, domain.OrderStatusClosed, true},

		{"no skip paid to in use", domain.OrderStatusPaid, domain.OrderStatusInUse, false},
		{"no skip pay pending to starting", domain.OrderStatusPayPending, domain.OrderStatusStarting, false},
		{"no reversal in use to paid", domain.OrderStatusInUse, domain.OrderStatusPaid, false},
		{"no cancel after start", domain.OrderStatusInUse, domain.OrderStatusCancelled, false},
		{"done is terminal", domain.OrderStatusDone, domain.OrderStatusRefunding, false},
		{"cancelled is terminal", domain.OrderStatusCancelled, domain.OrderStatusPaid, false},
		{"closed is terminal", domain.OrderStatusClosed, domain.OrderStatusPayPending, false},
		{"refund rollback not in table", domain.OrderStatusRefunding, domain.OrderStatusPaid, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.allowed, test.from.CanTransition(test.to))
		})
	}
}

func TestOrderStatus_Guards(t *testing.T) {
	assert.True(t, domain.OrderStatusInit.CanCancel())
	assert.True(t, domain.OrderStatusPayPending.CanCancel())
	assert.False(t, domain.OrderStatusPaid.CanCancel())
	assert.False(t, domain.OrderStatusInUse.CanCancel())

	assert.True(t, domain.OrderStatusPaid.CanRefund())
	assert.True(t, domain.OrderStatusStarting.CanRefund())
	assert.True(t, domain.OrderStatusInUse.CanRefund())
	assert.True(t, domain.OrderStatusRefunding.CanRefund())
	assert.False(t, domain.OrderStatusPayPending.CanRefund())
	assert.False(t, domain.OrderStatusDone.CanRefund())

	for _, s := range []domain.OrderStatus{domain.OrderStatusDone, domain.OrderStatusCancelled, domain.OrderStatusClosed} {
		assert.True(t, s.Terminal())
	}
	assert.False(t, domain.OrderStatusSettling.Terminal())
}

func TestMerchant_SplitIncome(t *testing.T) {
	m := domain.Merchant{CommissionBps: 1000} // 10%

	merchant, platform := m.SplitIncome(18000)
	assert.Equal(t, int64(16200), merchant)
	assert.Equal(t, int64(1800), platform)
	assert.Equal(t, int64(18000), merchant+platform)

	// rounding remainder stays on the platform side
	merchant, platform = m.SplitIncome(1001)
	assert.Equal(t, int64(1001), merchant+platform)
	assert.Equal(t, int64(900), merchant)
}

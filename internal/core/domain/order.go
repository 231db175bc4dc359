package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusInit       OrderStatus = "INIT"
	OrderStatusPayPending OrderStatus = "PAY_PENDING"
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusStarting   OrderStatus = "STARTING"
	OrderStatusInUse      OrderStatus = "IN_USE"
	OrderStatusSettling   OrderStatus = "SETTLING"
	OrderStatusDone       OrderStatus = "DONE"
	OrderStatusRefunding  OrderStatus = "REFUNDING"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
	OrderStatusClosed     OrderStatus = "CLOSED"
)

type PaymentMethod string

const (
	PaymentMethodBalance PaymentMethod = "BALANCE"
	PaymentMethodGateway PaymentMethod = "GATEWAY"
	PaymentMethodMixed   PaymentMethod = "MIXED"
)

const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 240

	// MaxOrderAmount is the hard ceiling for a single order, minor units.
	MaxOrderAmount int64 = 100_000

	PaymentWindow = 15 * time.Minute
)

// transitions is the only legal movement of an order status. The single
// exception, rolling REFUNDING back after a failed refund, is applied
// explicitly by the saga and never goes through CanTransition.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusInit:       {OrderStatusPayPending, OrderStatusPaid, OrderStatusCancelled, OrderStatusClosed},
	OrderStatusPayPending: {OrderStatusPaid, OrderStatusCancelled, OrderStatusClosed},
	OrderStatusPaid:       {OrderStatusStarting, OrderStatusRefunding},
	OrderStatusStarting:   {OrderStatusInUse, OrderStatusRefunding},
	OrderStatusInUse:      {OrderStatusSettling, OrderStatusRefunding},
	OrderStatusSettling:   {OrderStatusDone},
	OrderStatusRefunding:  {OrderStatusClosed},
	OrderStatusDone:       {},
	OrderStatusCancelled:  {},
	OrderStatusClosed:     {},
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanCancel holds while no money has moved and no device has been engaged.
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusInit || s == OrderStatusPayPending
}

func (s OrderStatus) CanRefund() bool {
	switch s {
	case OrderStatusPaid, OrderStatusStarting, OrderStatusInUse, OrderStatusRefunding:
		return true
	}
	return false
}

// ActiveUserStatuses occupy the single active-order slot per user,
// ActiveDeviceStatuses the slot per device. Both sets are enforced by
// partial unique indexes in storage.
var (
	ActiveUserStatuses   = []OrderStatus{OrderStatusPayPending, OrderStatusPaid, OrderStatusStarting, OrderStatusInUse}
	ActiveDeviceStatuses = []OrderStatus{OrderStatusStarting, OrderStatusInUse}
)

type Order struct {
	ID         uint64
	OrderNo    string
	UserID     uint64
	MerchantID uint64
	DeviceID   uint64

	Amount          int64
	PaidAmount      int64
	BalanceUsed     int64
	GiftBalanceUsed int64
	RefundAmount    int64

	DurationMinutes int
	ActualMinutes   int

	Status        OrderStatus
	PaymentMethod PaymentMethod
	GatewayTxnID  string
	ManualReview  bool
	Remark        string

	CreatedAt time.Time
	ExpireAt  time.Time
	PaidAt    *time.Time
	StartAt   *time.Time
	EndAt     *time.Time
	UpdatedAt time.Time
}

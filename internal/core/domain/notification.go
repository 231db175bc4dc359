package domain

import "time"

type NotificationKind string

const (
	NotifyOrderPaid     NotificationKind = "order_paid"
	NotifyOrderStarted  NotificationKind = "order_started"
	NotifyOrderFinished NotificationKind = "order_finished"
	NotifyOrderRefunded NotificationKind = "order_refunded"
	NotifyManualReview  NotificationKind = "manual_review"
)

// Notification is a fire-and-forget trigger for the external
// notification pipeline. Delivery is never part of order consistency.
type Notification struct {
	Kind       NotificationKind `json:"kind"`
	OrderNo    string           `json:"order_no"`
	UserID     uint64           `json:"user_id"`
	MerchantID uint64           `json:"merchant_id,omitempty"`
	Amount     int64            `json:"amount,omitempty"`
	Reason     string           `json:"reason,omitempty"`
	At         time.Time        `json:"at"`
}

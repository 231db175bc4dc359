package domain

type RefundAction string

const (
	RefundActionFull         RefundAction = "full_refund"
	RefundActionPartial      RefundAction = "partial_refund"
	RefundActionManualReview RefundAction = "manual_review"
)

// StalledRef names the order timestamp a rule threshold is measured from.
type StalledRef string

const (
	StalledByCreatedAt StalledRef = "created_at"
	StalledByPaidAt    StalledRef = "paid_at"
	StalledByStartAt   StalledRef = "start_at"
	StalledByUpdatedAt StalledRef = "updated_at"
)

// RefundRule is one declarative recovery rule. Rules run in ascending
// Priority and only the first enabled match is applied per order per sweep.
type RefundRule struct {
	ID       uint64
	Name     string
	Priority int
	Enabled  bool

	Status           OrderStatus
	SinceField       StalledRef
	ThresholdSeconds int

	// Optional filters; zero values mean no filter.
	PaymentMethod PaymentMethod
	MinAmount     int64
	MaxAmount     int64

	Action  RefundAction
	Percent int
}

// Matches reports whether the optional filters accept the order. The
// status and time-threshold parts of the condition are evaluated in the
// store query, not here.
func (r *RefundRule) Matches(o *Order) bool {
	if r.PaymentMethod != "" && o.PaymentMethod != r.PaymentMethod {
		return false
	}
	if r.MinAmount > 0 && o.PaidAmount < r.MinAmount {
		return false
	}
	if r.MaxAmount > 0 && o.PaidAmount > r.MaxAmount {
		return false
	}
	return true
}

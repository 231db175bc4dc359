package domain

type Merchant struct {
	ID       uint64
	Name     string
	Approved bool
	// CommissionBps is the platform commission in basis points (1/100 %).
	CommissionBps int32
	Revenue       int64
}

// SplitIncome splits an order amount into merchant and platform shares.
// The platform share absorbs the rounding remainder.
func (m *Merchant) SplitIncome(amount int64) (merchant, platform int64) {
	merchant = amount * int64(10000-m.CommissionBps) / 10000
	platform = amount - merchant
	return merchant, platform
}

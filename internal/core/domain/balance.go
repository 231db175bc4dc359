package domain

// Balance is the ledger row for a user: the authoritative store of
// balance and gift balance, both in minor currency units.
type Balance struct {
	UserID  uint64
	Balance int64
	Gift    int64
}

package port

import "context"

//go:generate mockgen -source=locker.go -destination=mock/locker.go -package=mock

// SweepLocker hands out short leases so that concurrent scanner instances
// never run the same sweep over the same batch.
type SweepLocker interface {
	// TryLock returns a release func and true when the lease was taken.
	TryLock(ctx context.Context, name string) (func(), bool)
}

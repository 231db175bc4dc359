package port

import (
	"context"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

//go:generate mockgen -source=directory.go -destination=mock/directory.go -package=mock

// Directory serves device and merchant reads, typically through a
// read-through cache in front of the repository. It is never used for
// money decisions beyond quoting; the repository stays authoritative.
type Directory interface {
	ReadDevice(ctx context.Context, deviceID uint64) (*domain.Device, error)
	ReadMerchant(ctx context.Context, merchantID uint64) (*domain.Merchant, error)
	InvalidateDevice(ctx context.Context, deviceID uint64) error
}

package port

import (
	"context"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier.go -package=mock

// Notifier is fire-and-forget: implementations must never block order
// processing and must swallow delivery failures.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}

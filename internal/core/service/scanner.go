package service

import (
	"context"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	sweepBatchSize   = 200
	sweepTimeout     = 2 * time.Minute
	startStallAfter  = 30 * time.Second
	settleStallAfter = 60 * time.Second
)

// Scanner runs the timeout-driven recovery sweeps. Every sweep re-reads
// order status through the saga before mutating, so overlapping with a
// manual action is safe; the per-sweep lease keeps a second scanner
// instance from working the same batch.
type Scanner struct {
	svc    *Service
	repo   port.Repository
	locker port.SweepLocker
	logger *zap.Logger
	cron   *cron.Cron
}

func NewScanner(svc *Service, repo port.Repository, locker port.SweepLocker, logger *zap.Logger) (*Scanner, error) {
	return &Scanner{
		svc:    svc,
		repo:   repo,
		locker: locker,
		logger: logger,
		cron:   cron.New(cron.WithSeconds()),
	}, nil
}

func (sc *Scanner) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func(context.Context)
	}{
		{"@every 60s", "payment-timeout", sc.SweepPaymentTimeout},
		{"@every 10s", "start-timeout", sc.SweepStartTimeout},
		{"@every 60s", "usage-timeout", sc.SweepUsageTimeout},
		{"@every 30s", "settlement-timeout", sc.SweepSettlementTimeout},
	}

	for _, job := range jobs {
		job := job
		_, err := sc.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()

			unlock, ok := sc.locker.TryLock(ctx, "sweep:"+job.name)
			if !ok {
				return
			}
			defer unlock()

			job.run(ctx)
		})
		if err != nil {
			return err
		}
	}

	sc.cron.Start()
	return nil
}

func (sc *Scanner) Stop(ctx context.Context) {
	stopped := sc.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

// SweepPaymentTimeout resolves PAY_PENDING orders whose payment window
// ran out: reconcile gateway orders against the gateway, cancel the rest.
func (sc *Scanner) SweepPaymentTimeout(ctx context.Context) {
	orders, err := sc.repo.ListStalledOrders(ctx, domain.OrderStatusPayPending,
		domain.StalledByCreatedAt, time.Now().Add(-domain.PaymentWindow), sweepBatchSize)
	if err != nil {
		sc.logger.Error("List expired payments", zap.Error(err))
		return
	}

	for _, order := range orders {
		if err := sc.svc.ReconcileOrCancel(ctx, order.ID); err != nil {
			sc.logger.Error("Resolve payment timeout",
				zap.String("order", order.OrderNo), zap.Error(err))
		}
	}
}

// SweepStartTimeout retries device start once for orders stuck in STARTING;
// the retry path refunds on failure.
func (sc *Scanner) SweepStartTimeout(ctx context.Context) {
	orders, err := sc.repo.ListStalledOrders(ctx, domain.OrderStatusStarting,
		domain.StalledByUpdatedAt, time.Now().Add(-startStallAfter), sweepBatchSize)
	if err != nil {
		sc.logger.Error("List stalled starts", zap.Error(err))
		return
	}

	for _, order := range orders {
		if err := sc.svc.RecoverStart(ctx, order.ID); err != nil {
			sc.logger.Error("Recover start",
				zap.String("order", order.OrderNo), zap.Error(err))
		}
	}
}

// SweepUsageTimeout force-finishes IN_USE orders that ran past their
// device's usage cap. A failed stop parks the order for manual review
// inside Finish, so the sweep never retries it forever.
func (sc *Scanner) SweepUsageTimeout(ctx context.Context) {
	orders, err := sc.repo.ListOverdueUsage(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		sc.logger.Error("List overdue usage", zap.Error(err))
		return
	}

	for _, order := range orders {
		if _, err := sc.svc.Finish(ctx, order.ID, 0); err != nil {
			sc.logger.Error("Forced finish",
				zap.String("order", order.OrderNo), zap.Error(err))
		}
	}
}

// SweepSettlementTimeout flags stalled settlements for an operator; no
// automatic mutation beyond the remark.
func (sc *Scanner) SweepSettlementTimeout(ctx context.Context) {
	orders, err := sc.repo.ListStalledOrders(ctx, domain.OrderStatusSettling,
		domain.StalledByUpdatedAt, time.Now().Add(-settleStallAfter), sweepBatchSize)
	if err != nil {
		sc.logger.Error("List stalled settlements", zap.Error(err))
		return
	}

	for _, order := range orders {
		if err := sc.svc.FlagManualReview(ctx, order.ID, "scanner: settlement stalled"); err != nil {
			sc.logger.Error("Flag settlement",
				zap.String("order", order.OrderNo), zap.Error(err))
		}
	}
}

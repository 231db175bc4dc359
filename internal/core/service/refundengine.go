package service

import (
	"context"
	"sort"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RefundEngine evaluates the declarative recovery rules against stalled
// orders. Rules run in ascending priority and only the first enabled
// match is applied per order per pass.
type RefundEngine struct {
	svc    *Service
	repo   port.Repository
	locker port.SweepLocker
	logger *zap.Logger
	cron   *cron.Cron
}

func NewRefundEngine(svc *Service, repo port.Repository, locker port.SweepLocker, logger *zap.Logger) (*RefundEngine, error) {
	return &RefundEngine{
		svc:    svc,
		repo:   repo,
		locker: locker,
		logger: logger,
		cron:   cron.New(cron.WithSeconds()),
	}, nil
}

func (e *RefundEngine) Start() error {
	_, err := e.cron.AddFunc("@every 60s", func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		unlock, ok := e.locker.TryLock(ctx, "sweep:refund-rules")
		if !ok {
			return
		}
		defer unlock()

		e.Sweep(ctx)
	})
	if err != nil {
		return err
	}

	e.cron.Start()
	return nil
}

func (e *RefundEngine) Stop(ctx context.Context) {
	stopped := e.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
}

func (e *RefundEngine) Sweep(ctx context.Context) {
	rules, err := e.repo.ListRefundRules(ctx)
	if err != nil {
		e.logger.Error("List refund rules", zap.Error(err))
		return
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Priority < rules[j].Priority })

	processed := make(map[uint64]bool)

	for _, rule := range rules {
		if !rule.Enabled {
			continue
		}
		if rule.Status == domain.OrderStatusRefunding || rule.Status == domain.OrderStatusClosed {
			// money in flight or already resolved is never rule territory
			continue
		}

		before := time.Now().Add(-time.Duration(rule.ThresholdSeconds) * time.Second)
		orders, err := e.repo.ListStalledOrders(ctx, rule.Status, rule.SinceField, before, sweepBatchSize)
		if err != nil {
			e.logger.Error("List rule candidates", zap.String("rule", rule.Name), zap.Error(err))
			continue
		}

		for _, order := range orders {
			if processed[order.ID] || !rule.Matches(order) {
				continue
			}
			processed[order.ID] = true
			e.apply(ctx, rule, order)
		}
	}
}

func (e *RefundEngine) apply(ctx context.Context, rule *domain.RefundRule, order *domain.Order) {
	reason := "refund-engine: " + rule.Name

	var err error
	switch rule.Action {
	case domain.RefundActionFull:
		err = e.svc.Refund(ctx, order.ID, reason)
	case domain.RefundActionPartial:
		amount := order.PaidAmount * int64(rule.Percent) / 100
		if amount <= 0 {
			return
		}
		err = e.svc.RefundPartial(ctx, order.ID, amount, reason)
	case domain.RefundActionManualReview:
		err = e.svc.CloseForReview(ctx, order.ID, reason)
	default:
		e.logger.Warn("Unknown rule action",
			zap.String("rule", rule.Name), zap.String("action", string(rule.Action)))
		return
	}

	if err != nil {
		e.logger.Error("Apply refund rule",
			zap.String("rule", rule.Name), zap.String("order", order.OrderNo), zap.Error(err))
	}
}

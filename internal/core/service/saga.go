package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/eshevtsov/washpoint/internal/core/utils"
	"go.uber.org/zap"
)

// CreateOrder validates the quote and claims the user's single active-order
// slot. Balance orders re-enter the payment path before returning, gateway
// orders come back with the client payment parameters.
func (s *Service) CreateOrder(ctx context.Context, userID, deviceID uint64,
	durationMinutes int, method domain.PaymentMethod) (*port.CreateOrderResult, error) {
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return nil, domain.ErrInvalidDuration
	}
	if method != domain.PaymentMethodBalance && method != domain.PaymentMethodGateway {
		return nil, domain.ErrBadRequest
	}

	device, err := s.dir.ReadDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device.Status != domain.DeviceStatusOnline {
		return nil, domain.ErrDeviceUnavailable
	}
	merchant, err := s.dir.ReadMerchant(ctx, device.MerchantID)
	if err != nil {
		return nil, err
	}
	if !merchant.Approved {
		return nil, domain.ErrMerchantNotApproved
	}

	amount := device.PricePerMinute * int64(durationMinutes)
	if amount < device.MinAmount {
		amount = device.MinAmount
	}
	if amount > domain.MaxOrderAmount {
		return nil, domain.ErrAmountTooHigh
	}

	now := time.Now()
	order := &domain.Order{
		OrderNo:         utils.NewOrderNo(now),
		UserID:          userID,
		MerchantID:      device.MerchantID,
		DeviceID:        deviceID,
		Amount:          amount,
		DurationMinutes: durationMinutes,
		Status:          domain.OrderStatusPayPending,
		PaymentMethod:   method,
		CreatedAt:       now,
		ExpireAt:        now.Add(domain.PaymentWindow),
		UpdatedAt:       now,
	}

	order, err = s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	result := &port.CreateOrderResult{Order: order}

	switch method {
	case domain.PaymentMethodBalance:
		paid, err := s.PayWithBalance(ctx, userID, order.ID)
		if err != nil {
			// order stays PAY_PENDING and is cancelled by the payment
			// timeout sweep when the window runs out
			return nil, err
		}
		result.Order = paid
	case domain.PaymentMethodGateway:
		intent, err := s.payments.CreateIntent(ctx, &domain.PaymentIntent{
			OrderNo:     order.OrderNo,
			Amount:      order.Amount,
			Description: device.Name,
			PayerRef:    strconv.FormatUint(userID, 10),
			NotifyURL:   s.notifyURL,
			ExpireAt:    order.ExpireAt,
		})
		if err != nil {
			s.logger.Error("Create payment intent", zap.String("order", order.OrderNo), zap.Error(err))
			return nil, err
		}
		result.Intent = intent
	}

	return result, nil
}

// PayWithBalance re-reads the ledger, allocates gift balance first, debits
// and marks PAID inside one transaction, then engages the device. A failed
// device start is compensated with a refund, never a silent balance loss.
func (s *Service) PayWithBalance(ctx context.Context, userID, orderID uint64) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if order.PaymentMethod != domain.PaymentMethodBalance {
		return nil, domain.ErrPaymentMethod
	}
	if order.Status != domain.OrderStatusPayPending {
		return nil, domain.ErrInvalidTransition
	}
	if time.Now().After(order.ExpireAt) {
		return nil, domain.ErrOrderExpired
	}

	var paid *domain.Order
	_, err = s.repo.UpdateBalanceByOrder(ctx, userID, orderID,
		[]domain.OrderStatus{domain.OrderStatusPayPending},
		func(b *domain.Balance, o *domain.Order) error {
			gift := o.Amount
			if b.Gift < gift {
				gift = b.Gift
			}
			rest := o.Amount - gift
			if b.Balance < rest {
				return domain.ErrInsufficientBalance
			}

			b.Gift -= gift
			b.Balance -= rest

			now := time.Now()
			o.Status = domain.OrderStatusPaid
			o.PaidAmount = o.Amount
			o.GiftBalanceUsed = gift
			o.BalanceUsed = rest
			o.PaidAt = &now
			paid = o

			return nil
		})
	if err != nil {
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			s.logger.Error("Balance debit", zap.String("order", order.OrderNo), zap.Error(err))
		}
		return nil, err
	}

	s.notifier.Notify(ctx, domain.Notification{
		Kind:    domain.NotifyOrderPaid,
		OrderNo: paid.OrderNo,
		UserID:  paid.UserID,
		Amount:  paid.PaidAmount,
		At:      time.Now(),
	})

	return s.startDevice(ctx, paid, true)
}

// ConfirmGatewayPayment is the idempotent entry for verified payment
// callbacks: redelivery for an order already PAID or later is a no-op.
func (s *Service) ConfirmGatewayPayment(ctx context.Context, notice *domain.PaymentNotice) error {
	order, err := s.repo.ReadOrderByNo(ctx, notice.OutTradeNo)
	if err != nil {
		return err
	}

	if order.Status != domain.OrderStatusPayPending {
		if notice.TradeState == domain.TradeStateSuccess &&
			(order.Status == domain.OrderStatusCancelled || order.Status == domain.OrderStatusClosed) &&
			order.PaidAmount == 0 {
			// money arrived for an order the scanner already cancelled:
			// push it straight back to the gateway
			s.refundLatePayment(ctx, order, notice)
		}
		return nil
	}
	if notice.TradeState != domain.TradeStateSuccess {
		s.logger.Info("Payment callback without success state",
			zap.String("order", order.OrderNo), zap.String("state", string(notice.TradeState)))
		return nil
	}
	if notice.Amount != order.Amount {
		s.logger.Warn("Payment callback amount mismatch",
			zap.String("order", order.OrderNo),
			zap.Int64("expected", order.Amount), zap.Int64("got", notice.Amount))
		return domain.ErrAmountMismatch
	}

	now := time.Now()
	order.Status = domain.OrderStatusPaid
	order.PaidAmount = notice.Amount
	order.GatewayTxnID = notice.TransactionID
	order.PaidAt = &now

	order, err = s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusPayPending})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			// a concurrent delivery already applied this callback
			return nil
		}
		return err
	}

	s.notifier.Notify(ctx, domain.Notification{
		Kind:    domain.NotifyOrderPaid,
		OrderNo: order.OrderNo,
		UserID:  order.UserID,
		Amount:  order.PaidAmount,
		At:      time.Now(),
	})

	// the gateway gets its ack regardless: a failed start is compensated
	// with a refund inside startDevice
	if _, err := s.startDevice(ctx, order, false); err != nil {
		s.logger.Error("Start after gateway payment", zap.String("order", order.OrderNo), zap.Error(err))
	}
	return nil
}

func (s *Service) refundLatePayment(ctx context.Context, order *domain.Order, notice *domain.PaymentNotice) {
	_, err := s.payments.CreateRefund(ctx, &domain.RefundRequest{
		OutTradeNo:   order.OrderNo,
		OutRefundNo:  utils.NewRefundNo(order.OrderNo, notice.Amount),
		TotalAmount:  notice.Amount,
		RefundAmount: notice.Amount,
		Reason:       "payment received after order was closed",
	})
	if err != nil {
		s.logger.Error("Late payment refund", zap.String("order", order.OrderNo), zap.Error(err))
	}
}

// StartDevice is the synchronous client entry: errors propagate to the caller.
func (s *Service) StartDevice(ctx context.Context, orderID uint64) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPaid {
		return domain.ErrInvalidTransition
	}
	if time.Now().After(order.ExpireAt) {
		return domain.ErrOrderExpired
	}
	_, err = s.startDevice(ctx, order, true)
	return err
}

func (s *Service) startDevice(ctx context.Context, order *domain.Order, propagate bool) (*domain.Order, error) {
	order.Status = domain.OrderStatusStarting
	order, err := s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusPaid})
	if err != nil {
		if errors.Is(err, domain.ErrStatusConflict) && !propagate {
			return nil, nil
		}
		return nil, err
	}

	device, err := s.dir.ReadDevice(ctx, order.DeviceID)
	if err != nil {
		return s.failStart(ctx, order, propagate, err)
	}

	err = s.devices.SendCommand(ctx, &domain.DeviceCommand{
		DevID:           device.DevID,
		Command:         domain.DeviceCommandStart,
		DurationMinutes: order.DurationMinutes,
	})
	if err != nil {
		return s.failStart(ctx, order, propagate, err)
	}

	now := time.Now()
	order.Status = domain.OrderStatusInUse
	order.StartAt = &now
	order, err = s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusStarting})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, domain.Notification{
		Kind:    domain.NotifyOrderStarted,
		OrderNo: order.OrderNo,
		UserID:  order.UserID,
		At:      now,
	})

	return order, nil
}

func (s *Service) failStart(ctx context.Context, order *domain.Order, propagate bool, cause error) (*domain.Order, error) {
	s.logger.Error("Device start", zap.String("order", order.OrderNo), zap.Error(cause))

	if err := s.Refund(ctx, order.ID, "device start failed"); err != nil {
		s.logger.Error("Compensating refund", zap.String("order", order.OrderNo), zap.Error(err))
	}
	if propagate {
		return nil, domain.ErrDeviceStartFailed
	}
	return nil, nil
}

// ReconcileOrCancel resolves a PAY_PENDING order whose window ran out.
// Gateway orders get one reconciliation query first so a payment whose
// callback was lost is confirmed instead of cancelled.
func (s *Service) ReconcileOrCancel(ctx context.Context, orderID uint64) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPayPending {
		return nil
	}

	if order.PaymentMethod == domain.PaymentMethodGateway {
		notice, err := s.payments.QueryPayment(ctx, order.OrderNo)
		if err != nil {
			s.logger.Error("Payment reconciliation", zap.String("order", order.OrderNo), zap.Error(err))
		} else if notice.TradeState == domain.TradeStateSuccess {
			s.logger.Info("Reconciled payment without callback", zap.String("order", order.OrderNo))
			return s.ConfirmGatewayPayment(ctx, notice)
		}
	}

	return s.Cancel(ctx, orderID, "scanner: payment timeout")
}

// RecoverStart is the timeout scanner entry for orders stuck in STARTING:
// confirm via device status if the first command actually landed, retry
// the start once otherwise, then refund.
func (s *Service) RecoverStart(ctx context.Context, orderID uint64) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusStarting {
		return nil
	}

	device, err := s.dir.ReadDevice(ctx, order.DeviceID)
	if err != nil {
		return err
	}

	confirmed := false
	if report, err := s.devices.QueryStatus(ctx, device.DevID); err == nil &&
		report.Status == domain.DeviceStatusWorking {
		// the original command landed, only the ack was lost
		confirmed = true
	}

	if !confirmed {
		err = s.devices.SendCommand(ctx, &domain.DeviceCommand{
			DevID:           device.DevID,
			Command:         domain.DeviceCommandStart,
			DurationMinutes: order.DurationMinutes,
		})
		if err != nil {
			s.logger.Error("Device start retry", zap.String("order", order.OrderNo), zap.Error(err))
			return s.Refund(ctx, order.ID, "scanner: device start retry failed")
		}
	}

	now := time.Now()
	startAt := now
	if confirmed {
		// the wash has been running since the command whose ack was
		// lost, which is when the order last moved to STARTING
		startAt = order.UpdatedAt
	}
	order.Status = domain.OrderStatusInUse
	order.StartAt = &startAt
	if _, err := s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusStarting}); err != nil {
		return err
	}

	s.notifier.Notify(ctx, domain.Notification{
		Kind:    domain.NotifyOrderStarted,
		OrderNo: order.OrderNo,
		UserID:  order.UserID,
		At:      now,
	})
	return nil
}

// Finish settles an IN_USE order. Overage past the quoted duration is
// billed at the device rate before the income split. Revenue and usage
// counters are best-effort after the DONE transition.
func (s *Service) Finish(ctx context.Context, orderID uint64, actualMinutes int) (*domain.Order, error) {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != domain.OrderStatusInUse {
		return nil, domain.ErrInvalidTransition
	}

	device, err := s.dir.ReadDevice(ctx, order.DeviceID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	actual := actualMinutes
	if actual <= 0 && order.StartAt != nil {
		actual = int(math.Ceil(now.Sub(*order.StartAt).Minutes()))
	}
	if actual <= 0 {
		actual = order.DurationMinutes
	}

	err = s.devices.SendCommand(ctx, &domain.DeviceCommand{
		DevID:   device.DevID,
		Command: domain.DeviceCommandStop,
	})
	if err != nil {
		// stop is unconfirmed: park in SETTLING for a human, do not move money
		s.logger.Error("Device stop", zap.String("order", order.OrderNo), zap.Error(err))
		order.Status = domain.OrderStatusSettling
		order.EndAt = &now
		order.ActualMinutes = actual
		order.ManualReview = true
		order.Remark = "device stop failed, settlement held for manual review"
		if _, uerr := s.repo.UpdateOrderGuarded(ctx, order,
			[]domain.OrderStatus{domain.OrderStatusInUse}); uerr != nil {
			s.logger.Error("Park for review", zap.String("order", order.OrderNo), zap.Error(uerr))
		}
		s.notifyReview(ctx, order, "device stop failed")
		return nil, domain.ErrDeviceStopFailed
	}

	order.Status = domain.OrderStatusSettling
	order.EndAt = &now
	order.ActualMinutes = actual
	if actual > order.DurationMinutes {
		order.Amount += int64(actual-order.DurationMinutes) * device.PricePerMinute
	}

	order, err = s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusInUse})
	if err != nil {
		return nil, err
	}

	order.Status = domain.OrderStatusDone
	order, err = s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusSettling})
	if err != nil {
		return nil, err
	}

	// money already settled; counters are not safety-critical
	s.settleCounters(ctx, order, actual)

	s.notifier.Notify(ctx, domain.Notification{
		Kind:       domain.NotifyOrderFinished,
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		MerchantID: order.MerchantID,
		Amount:     order.Amount,
		At:         now,
	})

	return order, nil
}

func (s *Service) settleCounters(ctx context.Context, order *domain.Order, actual int) {
	merchant, err := s.dir.ReadMerchant(ctx, order.MerchantID)
	if err != nil {
		s.logger.Error("Merchant read on settle", zap.String("order", order.OrderNo), zap.Error(err))
		return
	}
	merchantIncome, _ := merchant.SplitIncome(order.Amount)

	if err := s.repo.AddMerchantRevenue(ctx, order.MerchantID, merchantIncome); err != nil {
		s.logger.Error("Merchant revenue", zap.String("order", order.OrderNo), zap.Error(err))
	}
	if err := s.repo.AddDeviceUsage(ctx, order.DeviceID, actual, order.Amount); err != nil {
		s.logger.Error("Device usage", zap.String("order", order.OrderNo), zap.Error(err))
	}
	if err := s.dir.InvalidateDevice(ctx, order.DeviceID); err != nil {
		s.logger.Error("Device cache invalidate", zap.String("order", order.OrderNo), zap.Error(err))
	}
}

func (s *Service) Cancel(ctx context.Context, orderID uint64, reason string) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanCancel() {
		return domain.ErrInvalidTransition
	}

	from := order.Status
	order.Status = domain.OrderStatusCancelled
	order.Remark = reason
	_, err = s.repo.UpdateOrderGuarded(ctx, order, []domain.OrderStatus{from})
	if errors.Is(err, domain.ErrStatusConflict) {
		// someone paid or cancelled in between; the new status wins
		return domain.ErrInvalidTransition
	}
	return err
}

func (s *Service) Refund(ctx context.Context, orderID uint64, reason string) error {
	return s.refund(ctx, orderID, 0, reason)
}

func (s *Service) RefundPartial(ctx context.Context, orderID uint64, amount int64, reason string) error {
	if amount <= 0 {
		return domain.ErrBadRequest
	}
	return s.refund(ctx, orderID, amount, reason)
}

// refund moves the order to REFUNDING, returns the money by payment
// method and closes the order. On failure the visible status rolls back
// to the pre-refund state so the refund stays retryable.
func (s *Service) refund(ctx context.Context, orderID uint64, amount int64, reason string) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == domain.OrderStatusClosed {
		return nil
	}
	if !order.Status.CanRefund() {
		return domain.ErrInvalidTransition
	}

	preStatus := order.Status
	if preStatus == domain.OrderStatusRefunding {
		// retry of an earlier attempt: reconstruct the rollback target
		preStatus = domain.OrderStatusPayPending
		if order.PaidAt != nil {
			preStatus = domain.OrderStatusPaid
		}
	} else {
		order.Status = domain.OrderStatusRefunding
		order.Remark = reason
		order, err = s.repo.UpdateOrderGuarded(ctx, order, []domain.OrderStatus{
			domain.OrderStatusPaid, domain.OrderStatusStarting, domain.OrderStatusInUse,
		})
		if err != nil {
			return err
		}
	}

	refundable := order.PaidAmount - order.RefundAmount
	if amount <= 0 || amount > refundable {
		amount = refundable
	}
	if amount <= 0 {
		// nothing was ever collected
		order.Status = domain.OrderStatusClosed
		_, err = s.repo.UpdateOrderGuarded(ctx, order,
			[]domain.OrderStatus{domain.OrderStatusRefunding})
		return err
	}

	var refundErr error
	switch order.PaymentMethod {
	case domain.PaymentMethodBalance:
		refundErr = s.refundToBalance(ctx, order, amount)
	default:
		refundErr = s.refundViaGateway(ctx, order, amount, reason)
	}

	if refundErr != nil {
		s.logger.Error("Refund", zap.String("order", order.OrderNo), zap.Error(refundErr))

		if errors.Is(refundErr, errRefundUnsettled) {
			// the gateway already moved the money, only our close did not
			// land. A rollback here would make the order refundable again
			// and pay it out twice, so the order stays REFUNDING and a
			// human settles it.
			order.Status = domain.OrderStatusRefunding
			order.ManualReview = true
			order.Remark = "refund sent, close not persisted: " + reason
			if _, uerr := s.repo.UpdateOrderGuarded(ctx, order,
				[]domain.OrderStatus{domain.OrderStatusRefunding}); uerr != nil {
				s.logger.Error("Refund hold", zap.String("order", order.OrderNo), zap.Error(uerr))
			}
			s.notifyReview(ctx, order, "refund sent, close not persisted")
			return fmt.Errorf("%w: %s", domain.ErrRefundFailed, refundErr)
		}

		order.Status = preStatus
		order.Remark = "refund failed: " + reason
		if _, uerr := s.repo.UpdateOrderGuarded(ctx, order,
			[]domain.OrderStatus{domain.OrderStatusRefunding}); uerr != nil {
			s.logger.Error("Refund rollback", zap.String("order", order.OrderNo), zap.Error(uerr))
		}
		return fmt.Errorf("%w: %s", domain.ErrRefundFailed, refundErr)
	}

	s.notifier.Notify(ctx, domain.Notification{
		Kind:    domain.NotifyOrderRefunded,
		OrderNo: order.OrderNo,
		UserID:  order.UserID,
		Amount:  amount,
		Reason:  reason,
		At:      time.Now(),
	})
	return nil
}

// refundToBalance credits the ledger and closes the order in one
// transaction, restoring the gift/balance split exactly as debited.
func (s *Service) refundToBalance(ctx context.Context, order *domain.Order, amount int64) error {
	_, err := s.repo.UpdateBalanceByOrder(ctx, order.UserID, order.ID,
		[]domain.OrderStatus{domain.OrderStatusRefunding},
		func(b *domain.Balance, o *domain.Order) error {
			toBalance := amount
			if toBalance > o.BalanceUsed {
				toBalance = o.BalanceUsed
			}
			toGift := amount - toBalance

			b.Balance += toBalance
			b.Gift += toGift

			o.RefundAmount += amount
			o.Status = domain.OrderStatusClosed
			return nil
		})
	return err
}

// errRefundUnsettled marks a gateway refund that was accepted but whose
// close failed to persist. The caller must not roll the order back to a
// refundable status on this error.
var errRefundUnsettled = errors.New("refund accepted by gateway, close not persisted")

func (s *Service) refundViaGateway(ctx context.Context, order *domain.Order, amount int64, reason string) error {
	_, err := s.payments.CreateRefund(ctx, &domain.RefundRequest{
		OutTradeNo:   order.OrderNo,
		OutRefundNo:  utils.NewRefundNo(order.OrderNo, amount),
		TotalAmount:  order.PaidAmount,
		RefundAmount: amount,
		Reason:       reason,
	})
	if err != nil {
		return err
	}

	order.RefundAmount += amount
	order.Status = domain.OrderStatusClosed
	if _, err = s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{domain.OrderStatusRefunding}); err != nil {
		return fmt.Errorf("%w: %s", errRefundUnsettled, err)
	}
	return nil
}

// FlagManualReview marks the order for an operator without touching its
// status. Used where automation must stop but the order is mid-flight.
func (s *Service) FlagManualReview(ctx context.Context, orderID uint64, reason string) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.ManualReview {
		return nil
	}

	order.ManualReview = true
	order.Remark = reason
	if _, err := s.repo.UpdateOrderGuarded(ctx, order,
		[]domain.OrderStatus{order.Status}); err != nil {
		return err
	}

	s.notifyReview(ctx, order, reason)
	return nil
}

// CloseForReview forces the order to CLOSED with the review flag. Money
// movement for such orders is always resolved by a human.
func (s *Service) CloseForReview(ctx context.Context, orderID uint64, reason string) error {
	order, err := s.repo.ReadOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.Terminal() {
		return nil
	}

	from := order.Status
	order.Status = domain.OrderStatusClosed
	order.ManualReview = true
	order.Remark = reason
	if _, err := s.repo.UpdateOrderGuarded(ctx, order, []domain.OrderStatus{from}); err != nil {
		return err
	}

	s.notifyReview(ctx, order, reason)
	return nil
}

func (s *Service) notifyReview(ctx context.Context, order *domain.Order, reason string) {
	s.notifier.Notify(ctx, domain.Notification{
		Kind:       domain.NotifyManualReview,
		OrderNo:    order.OrderNo,
		UserID:     order.UserID,
		MerchantID: order.MerchantID,
		Reason:     reason,
		At:         time.Now(),
	})
}

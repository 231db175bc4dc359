package paymentgw

import (
	"context"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Simulator stands in for the payment gateway in dev mode. Intents and
// refunds always succeed so the order flow can be driven end to end.
type Simulator struct {
	logger *zap.Logger
}

func NewSimulator(logger *zap.Logger) *Simulator {
	return &Simulator{logger: logger}
}

func (s *Simulator) CreateIntent(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntentResult, error) {
	s.logger.Info("simulated payment intent",
		zap.String("order_no", intent.OrderNo),
		zap.Int64("amount", intent.Amount))
	return &domain.PaymentIntentResult{
		PrepayID: "sim-" + uuid.NewString(),
		ClientParams: map[string]string{
			"mode": "simulated",
		},
	}, nil
}

func (s *Simulator) QueryPayment(ctx context.Context, orderNo string) (*domain.PaymentNotice, error) {
	return &domain.PaymentNotice{
		OutTradeNo: orderNo,
		TradeState: domain.TradeStateNotPay,
	}, nil
}

func (s *Simulator) CreateRefund(ctx context.Context, req *domain.RefundRequest) (*domain.RefundResult, error) {
	s.logger.Info("simulated refund",
		zap.String("order_no", req.OutTradeNo),
		zap.Int64("amount", req.RefundAmount))
	return &domain.RefundResult{
		RefundID: "simref-" + time.Now().Format("150405"),
		Status:   "SUCCESS",
		Amount:   req.RefundAmount,
	}, nil
}

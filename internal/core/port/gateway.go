package port

import (
	"context"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway.go -package=mock

// DeviceGateway is the signed request wrapper around the device control API.
type DeviceGateway interface {
	SendCommand(ctx context.Context, cmd *domain.DeviceCommand) error
	QueryStatus(ctx context.Context, devID string) (*domain.DeviceReport, error)
}

// DeviceReportVerifier checks the signature of an inbound status report
// and rejects the report wholesale if it does not verify.
type DeviceReportVerifier interface {
	VerifyReport(body []byte) (*domain.DeviceReport, error)
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntentResult, error)
	QueryPayment(ctx context.Context, orderNo string) (*domain.PaymentNotice, error)
	CreateRefund(ctx context.Context, req *domain.RefundRequest) (*domain.RefundResult, error)
}

// PaymentCallbackParser verifies and decrypts an inbound payment callback.
type PaymentCallbackParser interface {
	ParseCallback(signature, timestamp, nonce string, body []byte) (*domain.PaymentNotice, error)
}

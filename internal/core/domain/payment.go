package domain

import "time"

// PaymentIntent is the request to open a payment with the gateway.
type PaymentIntent struct {
	OrderNo     string
	Amount      int64
	Description string
	PayerRef    string
	NotifyURL   string
	ExpireAt    time.Time
}

type PaymentIntentResult struct {
	PrepayID string
	// ClientParams are passed through to the paying client untouched.
	ClientParams map[string]string
}

type TradeState string

const (
	TradeStateSuccess  TradeState = "SUCCESS"
	TradeStateNotPay   TradeState = "NOTPAY"
	TradeStateClosed   TradeState = "CLOSED"
	TradeStateRefunded TradeState = "REFUND"
)

// PaymentNotice is a verified and decrypted payment callback.
type PaymentNotice struct {
	OutTradeNo    string
	TransactionID string
	Amount        int64
	TradeState    TradeState
}

type RefundRequest struct {
	OutTradeNo   string
	OutRefundNo  string
	TotalAmount  int64
	RefundAmount int64
	Reason       string
}

type RefundResult struct {
	RefundID string
	Status   string
	Amount   int64
}

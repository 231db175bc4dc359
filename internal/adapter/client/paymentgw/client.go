package paymentgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Client talks to the payment gateway's merchant API.
type Client struct {
	baseURL    string
	merchantID string
	apiKey     string
	http       *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, merchantID, apiKey string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		merchantID: merchantID,
		apiKey:     apiKey,
		http:       &http.Client{Timeout: requestTimeout},
		logger:     logger,
	}
}

type intentRequest struct {
	MerchantID  string `json:"mch_id"`
	OutTradeNo  string `json:"out_trade_no"`
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	PayerRef    string `json:"payer_ref,omitempty"`
	NotifyURL   string `json:"notify_url"`
	ExpireAt    string `json:"expire_at"`
}

type intentResponse struct {
	PrepayID     string            `json:"prepay_id"`
	ClientParams map[string]string `json:"client_params"`
}

func (c *Client) CreateIntent(ctx context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntentResult, error) {
	req := intentRequest{
		MerchantID:  c.merchantID,
		OutTradeNo:  intent.OrderNo,
		Amount:      intent.Amount,
		Description: intent.Description,
		PayerRef:    intent.PayerRef,
		NotifyURL:   intent.NotifyURL,
		ExpireAt:    intent.ExpireAt.Format(time.RFC3339),
	}

	var resp intentResponse
	if err := c.post(ctx, "/v3/pay/transactions", req, &resp); err != nil {
		return nil, err
	}

	return &domain.PaymentIntentResult{
		PrepayID:     resp.PrepayID,
		ClientParams: resp.ClientParams,
	}, nil
}

type queryResponse struct {
	OutTradeNo    string `json:"out_trade_no"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	TradeState    string `json:"trade_state"`
}

func (c *Client) QueryPayment(ctx context.Context, orderNo string) (*domain.PaymentNotice, error) {
	var resp queryResponse
	err := c.get(ctx, "/v3/pay/transactions/out-trade-no/"+orderNo+"?mch_id="+c.merchantID, &resp)
	if err != nil {
		return nil, err
	}

	return &domain.PaymentNotice{
		OutTradeNo:    resp.OutTradeNo,
		TransactionID: resp.TransactionID,
		Amount:        resp.Amount,
		TradeState:    domain.TradeState(resp.TradeState),
	}, nil
}

type refundRequest struct {
	MerchantID   string `json:"mch_id"`
	OutTradeNo   string `json:"out_trade_no"`
	OutRefundNo  string `json:"out_refund_no"`
	TotalAmount  int64  `json:"total"`
	RefundAmount int64  `json:"refund"`
	Reason       string `json:"reason,omitempty"`
}

type refundResponse struct {
	RefundID string `json:"refund_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
}

func (c *Client) CreateRefund(ctx context.Context, req *domain.RefundRequest) (*domain.RefundResult, error) {
	payload := refundRequest{
		MerchantID:   c.merchantID,
		OutTradeNo:   req.OutTradeNo,
		OutRefundNo:  req.OutRefundNo,
		TotalAmount:  req.TotalAmount,
		RefundAmount: req.RefundAmount,
		Reason:       req.Reason,
	}

	var resp refundResponse
	if err := c.post(ctx, "/v3/refund/domestic/refunds", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRefundFailed, err)
	}

	if resp.Status != "SUCCESS" && resp.Status != "PROCESSING" {
		return nil, fmt.Errorf("%w: gateway refund status %s", domain.ErrRefundFailed, resp.Status)
	}

	return &domain.RefundResult{
		RefundID: resp.RefundID,
		Status:   resp.Status,
		Amount:   resp.Amount,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	return c.do(httpReq, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	return c.do(httpReq, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("payment gateway error",
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw))
		return fmt.Errorf("payment gateway returned HTTP %d", resp.StatusCode)
	}
	return json.Unmarshal(raw, out)
}

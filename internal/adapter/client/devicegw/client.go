package devicegw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// Client talks to the device control gateway. Every request carries an
// HMAC signature over its parameters; every response is the gateway's
// {code, message, data} envelope where code 0 means success.
type Client struct {
	baseURL string
	appID   string
	secret  string
	http    *http.Client
	retry   RetryPolicy
	logger  *zap.Logger
}

func NewClient(baseURL, appID, secret string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		appID:   appID,
		secret:  secret,
		http:    &http.Client{Timeout: requestTimeout},
		retry:   DefaultRetryPolicy(),
		logger:  logger,
	}
}

type commandRequest struct {
	AppID     string            `json:"app_id"`
	DevID     string            `json:"devid"`
	Command   string            `json:"command"`
	Duration  int               `json:"duration,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	Nonce     string            `json:"nonce"`
	Timestamp int64             `json:"timestamp"`
	Sign      string            `json:"sign"`
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) SendCommand(ctx context.Context, cmd *domain.DeviceCommand) error {
	req := commandRequest{
		AppID:     c.appID,
		DevID:     cmd.DevID,
		Command:   string(cmd.Command),
		Duration:  cmd.DurationMinutes,
		Params:    cmd.Parameters,
		Nonce:     uuid.NewString(),
		Timestamp: time.Now().Unix(),
	}
	req.Sign = Sign(c.signParams(req), c.secret)

	return c.retry.Do(ctx, func() error {
		_, err := c.post(ctx, "/api/v1/device/command", req)
		if err != nil {
			c.logger.Warn("device command attempt failed",
				zap.String("devid", cmd.DevID),
				zap.String("command", string(cmd.Command)),
				zap.Error(err))
		}
		return err
	})
}

func (c *Client) QueryStatus(ctx context.Context, devID string) (*domain.DeviceReport, error) {
	req := commandRequest{
		AppID:     c.appID,
		DevID:     devID,
		Command:   "status",
		Nonce:     uuid.NewString(),
		Timestamp: time.Now().Unix(),
	}
	req.Sign = Sign(c.signParams(req), c.secret)

	var data json.RawMessage
	err := c.retry.Do(ctx, func() error {
		var err error
		data, err = c.post(ctx, "/api/v1/device/status", req)
		return err
	})
	if err != nil {
		return nil, err
	}

	report := domain.DeviceReport{}
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode status response: %w", err)
	}
	return &report, nil
}

func (c *Client) signParams(req commandRequest) map[string]string {
	params := map[string]string{
		"app_id":    req.AppID,
		"devid":     req.DevID,
		"command":   req.Command,
		"nonce":     req.Nonce,
		"timestamp": strconv.FormatInt(req.Timestamp, 10),
	}
	if req.Duration > 0 {
		params["duration"] = strconv.Itoa(req.Duration)
	}
	for k, v := range req.Params {
		params[k] = v
	}
	return params
}

func (c *Client) post(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned HTTP %d", resp.StatusCode)
	}

	env := envelope{}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode gateway response: %w", err)
	}
	if env.Code != 0 {
		return nil, fmt.Errorf("gateway error %d: %s", env.Code, env.Message)
	}
	return env.Data, nil
}

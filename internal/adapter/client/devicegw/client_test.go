package devicegw

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "app-1", "secret", zap.NewNop())
	client.retry.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return client
}

func TestSendCommandSignsRequest(t *testing.T) {
	var got commandRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"code":0,"message":"ok"}`))
	})

	err := client.SendCommand(context.Background(), &domain.DeviceCommand{
		DevID:           "CW-001",
		Command:         domain.DeviceCommandStart,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, "CW-001", got.DevID)
	assert.Equal(t, "start", got.Command)
	assert.Equal(t, 60, got.Duration)

	params := map[string]string{
		"app_id":    got.AppID,
		"devid":     got.DevID,
		"command":   got.Command,
		"duration":  strconv.Itoa(got.Duration),
		"nonce":     got.Nonce,
		"timestamp": strconv.FormatInt(got.Timestamp, 10),
	}
	assert.True(t, VerifySignature(params, "secret", got.Sign))
}

func TestSendCommandGatewayError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":1001,"message":"device busy"}`))
	})

	err := client.SendCommand(context.Background(), &domain.DeviceCommand{
		DevID:   "CW-001",
		Command: domain.DeviceCommandStop,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device busy")
}

func TestSendCommandRetriesTransportErrors(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"code":0}`))
	})

	err := client.SendCommand(context.Background(), &domain.DeviceCommand{
		DevID:   "CW-001",
		Command: domain.DeviceCommandStart,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestQueryStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":0,"data":{"devid":"CW-001","status":"working","signal":21,"battery":88}}`))
	})

	report, err := client.QueryStatus(context.Background(), "CW-001")
	require.NoError(t, err)
	assert.Equal(t, "CW-001", report.DevID)
	assert.Equal(t, domain.DeviceStatusWorking, report.Status)
	assert.Equal(t, 21, report.Signal)
}

func TestVerifyReport(t *testing.T) {
	verifier := NewReportVerifier("secret")

	payload := reportPayload{
		DevID:     "CW-001",
		Status:    "online",
		Signal:    25,
		Battery:   90,
		Timestamp: time.Now().Unix(),
	}
	payload.Sign = Sign(map[string]string{
		"devid":     payload.DevID,
		"status":    payload.Status,
		"signal":    strconv.Itoa(payload.Signal),
		"battery":   strconv.Itoa(payload.Battery),
		"timestamp": strconv.FormatInt(payload.Timestamp, 10),
	}, "secret")

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	report, err := verifier.VerifyReport(body)
	require.NoError(t, err)
	assert.Equal(t, "CW-001", report.DevID)
	assert.Equal(t, domain.DeviceStatusOnline, report.Status)

	payload.Battery = 10
	tampered, err := json.Marshal(payload)
	require.NoError(t, err)
	_, err = verifier.VerifyReport(tampered)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

package devicegw

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

type reportPayload struct {
	DevID        string  `json:"devid"`
	Status       string  `json:"status"`
	Signal       int     `json:"signal"`
	Battery      int     `json:"battery"`
	Temperature  float64 `json:"temperature"`
	Pressure     float64 `json:"pressure"`
	WorkTime     int     `json:"work_time"`
	ErrorCode    string  `json:"error_code"`
	ErrorMessage string  `json:"error_message"`
	Location     string  `json:"location"`
	Timestamp    int64   `json:"timestamp"`
	Sign         string  `json:"sign"`
}

// ReportVerifier checks the HMAC signature on inbound device status
// reports before anything from the body is trusted.
type ReportVerifier struct {
	secret string
}

func NewReportVerifier(secret string) *ReportVerifier {
	return &ReportVerifier{secret: secret}
}

func (v *ReportVerifier) VerifyReport(body []byte) (*domain.DeviceReport, error) {
	payload := reportPayload{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.ErrBadRequest
	}
	if payload.DevID == "" {
		return nil, domain.ErrBadRequest
	}

	params := map[string]string{
		"devid":     payload.DevID,
		"status":    payload.Status,
		"signal":    strconv.Itoa(payload.Signal),
		"battery":   strconv.Itoa(payload.Battery),
		"timestamp": strconv.FormatInt(payload.Timestamp, 10),
	}
	if payload.ErrorCode != "" {
		params["error_code"] = payload.ErrorCode
	}
	if !VerifySignature(params, v.secret, payload.Sign) {
		return nil, domain.ErrInvalidSignature
	}

	return &domain.DeviceReport{
		DevID:        payload.DevID,
		Status:       domain.DeviceStatus(payload.Status),
		Signal:       payload.Signal,
		Battery:      payload.Battery,
		Temperature:  payload.Temperature,
		Pressure:     payload.Pressure,
		WorkTime:     payload.WorkTime,
		ErrorCode:    payload.ErrorCode,
		ErrorMessage: payload.ErrorMessage,
		Location:     payload.Location,
		Timestamp:    time.Unix(payload.Timestamp, 0),
	}, nil
}

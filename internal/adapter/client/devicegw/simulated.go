package devicegw

import (
	"context"
	"math/rand"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"go.uber.org/zap"
)

// Simulator stands in for the device gateway in dev mode. A configurable
// share of commands fails so the recovery paths stay exercised.
type Simulator struct {
	failureRate float64
	logger      *zap.Logger
}

func NewSimulator(failureRate float64, logger *zap.Logger) *Simulator {
	return &Simulator{failureRate: failureRate, logger: logger}
}

func (s *Simulator) SendCommand(ctx context.Context, cmd *domain.DeviceCommand) error {
	if rand.Float64() < s.failureRate {
		s.logger.Info("simulated device command failure",
			zap.String("devid", cmd.DevID),
			zap.String("command", string(cmd.Command)))
		return domain.ErrDeviceUnavailable
	}
	s.logger.Info("simulated device command",
		zap.String("devid", cmd.DevID),
		zap.String("command", string(cmd.Command)),
		zap.Int("duration", cmd.DurationMinutes))
	return nil
}

func (s *Simulator) QueryStatus(ctx context.Context, devID string) (*domain.DeviceReport, error) {
	return &domain.DeviceReport{
		DevID:     devID,
		Status:    domain.DeviceStatusOnline,
		Signal:    28,
		Battery:   100,
		Timestamp: time.Now(),
	}, nil
}

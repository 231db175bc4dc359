package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WebhookHandler receives callbacks from the payment gateway and status
// reports from the device gateway. Both carry their own signatures and
// bypass user auth.
type WebhookHandler struct {
	Handler
	service  port.Service
	payments port.PaymentCallbackParser
	reports  port.DeviceReportVerifier
}

func NewWebhookHandler(service port.Service, payments port.PaymentCallbackParser,
	reports port.DeviceReportVerifier, logger *zap.Logger) (*WebhookHandler, error) {
	return &WebhookHandler{
		Handler:  *NewHandler(logger),
		service:  service,
		payments: payments,
		reports:  reports,
	}, nil
}

func (wh *WebhookHandler) PaymentCallback(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		wh.handleValidationError(ctx, err)
		return
	}

	notice, err := wh.payments.ParseCallback(
		ctx.GetHeader("X-Signature"),
		ctx.GetHeader("X-Timestamp"),
		ctx.GetHeader("X-Nonce"),
		body,
	)
	if err != nil {
		wh.logger.Warn("payment callback rejected",
			zap.String("ip", ctx.ClientIP()), zap.Error(err))
		wh.handleError(ctx, err)
		return
	}

	if err := wh.service.ConfirmGatewayPayment(ctx, notice); err != nil {
		wh.handleError(ctx, err)
		return
	}

	// the gateway stops retrying once it sees SUCCESS
	ctx.JSON(http.StatusOK, gin.H{"code": "SUCCESS"})
}

func (wh *WebhookHandler) DeviceReport(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		wh.handleValidationError(ctx, err)
		return
	}

	report, err := wh.reports.VerifyReport(body)
	if err != nil {
		wh.logger.Warn("device report rejected",
			zap.String("ip", ctx.ClientIP()), zap.Error(err))
		wh.handleError(ctx, err)
		return
	}

	if err := wh.service.RecordDeviceReport(ctx, report); err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			// unknown device, acknowledge so the gateway stops retrying
			ctx.JSON(http.StatusOK, gin.H{"code": 0})
			return
		}
		wh.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"code": 0})
}

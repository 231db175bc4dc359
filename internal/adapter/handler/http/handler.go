package http

import (
	"errors"
	"net/http"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

var errorStatusMap = map[error]int{
	domain.ErrInternal:        http.StatusInternalServerError,
	domain.ErrDataNotFound:    http.StatusNotFound,
	domain.ErrConflictingData: http.StatusConflict,
	domain.ErrStatusConflict:  http.StatusConflict,

	domain.ErrInvalidCredentials:         http.StatusUnauthorized,
	domain.ErrUnauthorized:               http.StatusUnauthorized,
	domain.ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationHeader: http.StatusUnauthorized,
	domain.ErrInvalidAuthorizationType:   http.StatusUnauthorized,
	domain.ErrInvalidToken:               http.StatusUnauthorized,
	domain.ErrExpiredToken:               http.StatusUnauthorized,
	domain.ErrInvalidSignature:           http.StatusUnauthorized,
	domain.ErrForbidden:                  http.StatusForbidden,

	domain.ErrBadRequest: http.StatusBadRequest,

	domain.ErrInvalidTransition:   http.StatusConflict,
	domain.ErrActiveOrderExists:   http.StatusConflict,
	domain.ErrDeviceUnavailable:   http.StatusUnprocessableEntity,
	domain.ErrMerchantNotApproved: http.StatusUnprocessableEntity,
	domain.ErrInvalidDuration:     http.StatusUnprocessableEntity,
	domain.ErrAmountTooHigh:       http.StatusUnprocessableEntity,
	domain.ErrPaymentMethod:       http.StatusUnprocessableEntity,
	domain.ErrOrderExpired:        http.StatusUnprocessableEntity,
	domain.ErrAmountMismatch:      http.StatusUnprocessableEntity,
	domain.ErrInsufficientBalance: http.StatusPaymentRequired,
	domain.ErrDeviceStartFailed:   http.StatusBadGateway,
	domain.ErrDeviceStopFailed:    http.StatusAccepted,
	domain.ErrRefundFailed:        http.StatusBadGateway,
}

func statusForError(err error) (int, bool) {
	if code, ok := errorStatusMap[err]; ok {
		return code, true
	}
	// saga errors wrap sentinels with detail
	for sentinel, code := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return http.StatusInternalServerError, false
}

type Handler struct {
	logger *zap.Logger
}

func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{logger: logger}
}

// handleValidationError sends an error response for some specific request validation error
func (h *Handler) handleValidationError(ctx *gin.Context, err error) {
	ctx.Status(http.StatusBadRequest)
}

// handleAbort sends an error response and aborts the request with the specified status code and error message
func handleAbort(ctx *gin.Context, err error) {
	statusCode, _ := statusForError(err)
	ctx.AbortWithError(statusCode, err)
}

func (h *Handler) handleError(ctx *gin.Context, err error) {
	statusCode, known := statusForError(err)
	if !known {
		h.logger.Error("error processing request", zap.Error(err))
	}
	ctx.Status(statusCode)
}

// handleSuccess sends a success response with the specified status code and optional data
func (h *Handler) handleSuccessWithStatus(ctx *gin.Context, data any, status int) {
	if data != nil {
		ctx.JSON(http.StatusOK, data)
	} else {
		ctx.Status(status)
	}
}

func (h *Handler) handleSuccess(ctx *gin.Context, data any) {
	h.handleSuccessWithStatus(ctx, data, http.StatusOK)
}

// moneyString renders minor units as a decimal currency string.
func moneyString(v int64) string {
	d, err := decimal.New(v, 2)
	if err != nil {
		return "0.00"
	}
	return d.String()
}

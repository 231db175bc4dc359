package http

import (
	"net/http"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/gin-gonic/gin"
	"github.com/govalues/decimal"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Handler
	service port.Service
}

func NewOrderHandler(service port.Service, logger *zap.Logger) (*OrderHandler, error) {
	return &OrderHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type CreateOrderRequest struct {
	DeviceID        uint64 `json:"device_id" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
}

type OrderResp struct {
	OrderNo         string     `json:"order_no"`
	Status          string     `json:"status"`
	DeviceID        uint64     `json:"device_id"`
	Amount          string     `json:"amount"`
	PaidAmount      string     `json:"paid_amount,omitempty"`
	RefundAmount    string     `json:"refund_amount,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	ActualMinutes   int        `json:"actual_minutes,omitempty"`
	PaymentMethod   string     `json:"payment_method"`
	ManualReview    bool       `json:"manual_review,omitempty"`
	Remark          string     `json:"remark,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpireAt        time.Time  `json:"expire_at"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	StartAt         *time.Time `json:"start_at,omitempty"`
	EndAt           *time.Time `json:"end_at,omitempty"`
}

type CreateOrderResp struct {
	Order        OrderResp         `json:"order"`
	PrepayID     string            `json:"prepay_id,omitempty"`
	ClientParams map[string]string `json:"client_params,omitempty"`
}

func orderResp(o *domain.Order) OrderResp {
	r := OrderResp{
		OrderNo:         o.OrderNo,
		Status:          string(o.Status),
		DeviceID:        o.DeviceID,
		Amount:          moneyString(o.Amount),
		DurationMinutes: o.DurationMinutes,
		ActualMinutes:   o.ActualMinutes,
		PaymentMethod:   string(o.PaymentMethod),
		ManualReview:    o.ManualReview,
		Remark:          o.Remark,
		CreatedAt:       o.CreatedAt,
		ExpireAt:        o.ExpireAt,
		PaidAt:          o.PaidAt,
		StartAt:         o.StartAt,
		EndAt:           o.EndAt,
	}
	if o.PaidAmount > 0 {
		r.PaidAmount = moneyString(o.PaidAmount)
	}
	if o.RefundAmount > 0 {
		r.RefundAmount = moneyString(o.RefundAmount)
	}
	return r
}

func (oh *OrderHandler) CreateOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	req := CreateOrderRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		oh.handleValidationError(ctx, err)
		return
	}

	method := domain.PaymentMethod(req.PaymentMethod)
	result, err := oh.service.CreateOrder(ctx, userID, req.DeviceID, req.DurationMinutes, method)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := CreateOrderResp{Order: orderResp(result.Order)}
	if result.Intent != nil {
		resp.PrepayID = result.Intent.PrepayID
		resp.ClientParams = result.Intent.ClientParams
	}
	ctx.JSON(http.StatusCreated, resp)
}

func (oh *OrderHandler) ListOrdersByUser(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	list, err := oh.service.GetOrdersByUser(ctx, userID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	result := make([]OrderResp, 0, len(list))
	for _, o := range list {
		result = append(result, orderResp(o))
	}

	oh.handleSuccess(ctx, result)
}

func (oh *OrderHandler) GetOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrderByNo(ctx, userID, ctx.Param("orderNo"))
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := orderResp(order)
	oh.handleSuccess(ctx, &resp)
}

func (oh *OrderHandler) orderIDForUser(ctx *gin.Context) (uint64, bool) {
	userID := getAuthPayload(ctx).UserID

	order, err := oh.service.GetOrderByNo(ctx, userID, ctx.Param("orderNo"))
	if err != nil {
		oh.handleError(ctx, err)
		return 0, false
	}
	return order.ID, true
}

func (oh *OrderHandler) PayOrder(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	orderID, ok := oh.orderIDForUser(ctx)
	if !ok {
		return
	}

	order, err := oh.service.PayWithBalance(ctx, userID, orderID)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := orderResp(order)
	oh.handleSuccess(ctx, &resp)
}

// StartOrder retries device engagement for a PAID order, e.g. after the
// client saw a start failure and the user pressed the button again.
func (oh *OrderHandler) StartOrder(ctx *gin.Context) {
	orderID, ok := oh.orderIDForUser(ctx)
	if !ok {
		return
	}

	if err := oh.service.StartDevice(ctx, orderID); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, nil, http.StatusOK)
}

type FinishOrderRequest struct {
	ActualMinutes int `json:"actual_minutes"`
}

func (oh *OrderHandler) FinishOrder(ctx *gin.Context) {
	orderID, ok := oh.orderIDForUser(ctx)
	if !ok {
		return
	}

	req := FinishOrderRequest{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
			oh.handleValidationError(ctx, err)
			return
		}
	}

	order, err := oh.service.Finish(ctx, orderID, req.ActualMinutes)
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	resp := orderResp(order)
	oh.handleSuccess(ctx, &resp)
}

func (oh *OrderHandler) CancelOrder(ctx *gin.Context) {
	orderID, ok := oh.orderIDForUser(ctx)
	if !ok {
		return
	}

	if err := oh.service.Cancel(ctx, orderID, "cancelled by user"); err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, nil, http.StatusOK)
}

type RefundOrderRequest struct {
	Amount string `json:"amount,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (oh *OrderHandler) RefundOrder(ctx *gin.Context) {
	orderID, ok := oh.orderIDForUser(ctx)
	if !ok {
		return
	}

	req := RefundOrderRequest{}
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
			oh.handleValidationError(ctx, err)
			return
		}
	}
	reason := req.Reason
	if reason == "" {
		reason = "requested by user"
	}

	var err error
	if req.Amount == "" {
		err = oh.service.Refund(ctx, orderID, reason)
	} else {
		var amount int64
		amount, err = parseMoney(req.Amount)
		if err != nil {
			oh.handleValidationError(ctx, err)
			return
		}
		err = oh.service.RefundPartial(ctx, orderID, amount, reason)
	}
	if err != nil {
		oh.handleError(ctx, err)
		return
	}

	oh.handleSuccessWithStatus(ctx, nil, http.StatusOK)
}

// parseMoney reads a decimal currency string into minor units.
func parseMoney(s string) (int64, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		return 0, err
	}
	whole, frac, ok := d.Int64(2)
	if !ok {
		return 0, domain.ErrBadRequest
	}
	return whole*100 + frac, nil
}

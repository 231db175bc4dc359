package http

import (
	"github.com/eshevtsov/washpoint/internal/core/port"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BalanceHandler struct {
	Handler
	service port.Service
}

func NewBalanceHandler(service port.Service, logger *zap.Logger) (*BalanceHandler, error) {
	return &BalanceHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type BalanceResp struct {
	Balance string `json:"balance"`
	Gift    string `json:"gift"`
}

func (bh *BalanceHandler) GetBalance(ctx *gin.Context) {
	userID := getAuthPayload(ctx).UserID

	balance, err := bh.service.GetUserBalance(ctx, userID)
	if err != nil {
		bh.handleError(ctx, err)
		return
	}

	bh.handleSuccess(ctx, &BalanceResp{
		Balance: moneyString(balance.Balance),
		Gift:    moneyString(balance.Gift),
	})
}

package utils

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNo builds a globally unique, human-traceable order number:
// a W prefix, the creation second, and the first uuid block.
func NewOrderNo(now time.Time) string {
	id := uuid.NewString()
	return "W" + now.Format("20060102150405") + strings.ToUpper(id[:8])
}

// NewRefundNo derives a refund number from the order number and amount.
// It is deterministic on purpose: a retried refund carries the same
// number, so the gateway deduplicates it instead of paying out twice.
func NewRefundNo(orderNo string, amount int64) string {
	return orderNo + "R" + strconv.FormatInt(amount, 10)
}

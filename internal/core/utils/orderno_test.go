package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/eshevtsov/washpoint/internal/core/utils"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderNo(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 30, 45, 0, time.UTC)

	no := utils.NewOrderNo(now)
	assert.True(t, strings.HasPrefix(no, "W20240701123045"))
	assert.Len(t, no, 1+14+8)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		n := utils.NewOrderNo(now)
		assert.False(t, seen[n])
		seen[n] = true
	}
}

func TestNewRefundNo(t *testing.T) {
	assert.Equal(t, "W1R18000", utils.NewRefundNo("W1", 18000))

	// same order and amount always yield the same number, so retries
	// deduplicate on the gateway side
	assert.Equal(t, utils.NewRefundNo("W1", 18000), utils.NewRefundNo("W1", 18000))
	assert.NotEqual(t, utils.NewRefundNo("W1", 18000), utils.NewRefundNo("W1", 9000))
}

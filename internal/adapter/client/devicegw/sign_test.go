package devicegw

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignDeterministic(t *testing.T) {
	params := map[string]string{
		"devid":     "CW-001",
		"command":   "start",
		"timestamp": "1700000000",
		"nonce":     "abc",
	}

	first := Sign(params, "secret")
	second := Sign(params, "secret")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

func TestSignKeyOrderIndependent(t *testing.T) {
	a := Sign(map[string]string{"b": "2", "a": "1", "c": "3"}, "s")
	b := Sign(map[string]string{"c": "3", "a": "1", "b": "2"}, "s")
	assert.Equal(t, a, b)
}

func TestSignSecretChangesSignature(t *testing.T) {
	params := map[string]string{"devid": "CW-001"}
	assert.NotEqual(t, Sign(params, "one"), Sign(params, "two"))
}

func TestVerifySignature(t *testing.T) {
	params := map[string]string{"devid": "CW-001", "status": "online"}
	sig := Sign(params, "secret")

	assert.True(t, VerifySignature(params, "secret", sig))
	assert.False(t, VerifySignature(params, "secret", sig+"00"))
	assert.False(t, VerifySignature(params, "other", sig))

	params["status"] = "offline"
	assert.False(t, VerifySignature(params, "secret", sig))
}

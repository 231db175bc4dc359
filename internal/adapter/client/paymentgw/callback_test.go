package paymentgw

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/eshevtsov/washpoint/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func encryptResource(t *testing.T, resource callbackResource, nonce, associatedData string) string {
	t.Helper()
	plaintext, err := json.Marshal(resource)
	require.NoError(t, err)

	block, err := aes.NewCipher([]byte(testKey))
	require.NoError(t, err)
	gcm, err := cipher.NewGCM(block)
	require.NoError(t, err)

	sealed := gcm.Seal(nil, []byte(nonce), plaintext, []byte(associatedData))
	return base64.StdEncoding.EncodeToString(sealed)
}

func signCallback(timestamp, nonce string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(testKey))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("\n"))
	mac.Write([]byte(nonce))
	mac.Write([]byte("\n"))
	mac.Write(body)
	mac.Write([]byte("\n"))
	return hex.EncodeToString(mac.Sum(nil))
}

func buildCallback(t *testing.T, resource callbackResource) (signature, timestamp, nonce string, body []byte) {
	t.Helper()
	const gcmNonce = "abc123def456" // 12 bytes

	cb := callbackBody{EventType: "TRANSACTION.SUCCESS"}
	cb.Resource.Ciphertext = encryptResource(t, resource, gcmNonce, "transaction")
	cb.Resource.Nonce = gcmNonce
	cb.Resource.AssociatedData = "transaction"

	body, err := json.Marshal(cb)
	require.NoError(t, err)

	timestamp = "1700000000"
	nonce = "req-nonce"
	signature = signCallback(timestamp, nonce, body)
	return signature, timestamp, nonce, body
}

func TestParseCallback(t *testing.T) {
	parser := NewCallbackParser(testKey)

	signature, timestamp, nonce, body := buildCallback(t, callbackResource{
		OutTradeNo:    "W20260115093000AB12CD34",
		TransactionID: "txn-778",
		Amount:        18000,
		TradeState:    "SUCCESS",
	})

	notice, err := parser.ParseCallback(signature, timestamp, nonce, body)
	require.NoError(t, err)
	assert.Equal(t, "W20260115093000AB12CD34", notice.OutTradeNo)
	assert.Equal(t, "txn-778", notice.TransactionID)
	assert.Equal(t, int64(18000), notice.Amount)
	assert.Equal(t, domain.TradeStateSuccess, notice.TradeState)
}

func TestParseCallbackRejectsBadSignature(t *testing.T) {
	parser := NewCallbackParser(testKey)

	_, timestamp, nonce, body := buildCallback(t, callbackResource{OutTradeNo: "W1"})

	_, err := parser.ParseCallback("deadbeef", timestamp, nonce, body)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestParseCallbackRejectsTamperedBody(t *testing.T) {
	parser := NewCallbackParser(testKey)

	signature, timestamp, nonce, body := buildCallback(t, callbackResource{OutTradeNo: "W1", Amount: 100})
	body[len(body)-2]++

	_, err := parser.ParseCallback(signature, timestamp, nonce, body)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestParseCallbackRejectsBadNonceLength(t *testing.T) {
	parser := NewCallbackParser(testKey)

	// correctly signed envelope whose resource nonce is not 12 bytes:
	// must come back as an error, not a panic out of the GCM open
	cb := callbackBody{EventType: "TRANSACTION.SUCCESS"}
	cb.Resource.Ciphertext = encryptResource(t, callbackResource{OutTradeNo: "W1"}, "abc123def456", "transaction")
	cb.Resource.Nonce = "short"
	cb.Resource.AssociatedData = "transaction"

	body, err := json.Marshal(cb)
	require.NoError(t, err)
	signature := signCallback("1700000000", "req-nonce", body)

	_, err = parser.ParseCallback(signature, "1700000000", "req-nonce", body)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

func TestParseCallbackRejectsForeignKey(t *testing.T) {
	parser := NewCallbackParser("ffffffffffffffffffffffffffffffff")

	signature, timestamp, nonce, body := buildCallback(t, callbackResource{OutTradeNo: "W1"})

	_, err := parser.ParseCallback(signature, timestamp, nonce, body)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

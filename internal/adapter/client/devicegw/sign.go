package devicegw

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Sign builds the gateway request signature: parameters sorted by key,
// joined as key=value with &, the shared secret appended, and the whole
// string run through HMAC-SHA-256 keyed with the secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	sb.WriteByte('&')
	sb.WriteString(secret)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(sb.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature produced by Sign in constant time.
func VerifySignature(params map[string]string, secret, signature string) bool {
	expected := Sign(params, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

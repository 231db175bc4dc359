package paymentgw

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"

	"github.com/eshevtsov/washpoint/internal/core/domain"
)

// CallbackParser verifies the signature on payment callbacks and opens
// the encrypted resource envelope. The callback key doubles as HMAC key
// and AES-256-GCM key, so it must be 32 bytes.
type CallbackParser struct {
	key []byte
}

func NewCallbackParser(key string) *CallbackParser {
	return &CallbackParser{key: []byte(key)}
}

type callbackBody struct {
	EventType string `json:"event_type"`
	Resource  struct {
		Ciphertext     string `json:"ciphertext"`
		Nonce          string `json:"nonce"`
		AssociatedData string `json:"associated_data"`
	} `json:"resource"`
}

type callbackResource struct {
	OutTradeNo    string `json:"out_trade_no"`
	TransactionID string `json:"transaction_id"`
	Amount        int64  `json:"amount"`
	TradeState    string `json:"trade_state"`
}

func (p *CallbackParser) ParseCallback(signature, timestamp, nonce string, body []byte) (*domain.PaymentNotice, error) {
	if !p.verify(signature, timestamp, nonce, body) {
		return nil, domain.ErrInvalidSignature
	}

	cb := callbackBody{}
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, domain.ErrBadRequest
	}

	plaintext, err := p.decrypt(cb.Resource.Ciphertext, cb.Resource.Nonce, cb.Resource.AssociatedData)
	if err != nil {
		return nil, domain.ErrInvalidSignature
	}

	resource := callbackResource{}
	if err := json.Unmarshal(plaintext, &resource); err != nil {
		return nil, domain.ErrBadRequest
	}

	return &domain.PaymentNotice{
		OutTradeNo:    resource.OutTradeNo,
		TransactionID: resource.TransactionID,
		Amount:        resource.Amount,
		TradeState:    domain.TradeState(resource.TradeState),
	}, nil
}

func (p *CallbackParser) verify(signature, timestamp, nonce string, body []byte) bool {
	mac := hmac.New(sha256.New, p.key)
	mac.Write([]byte(timestamp))
	mac.Write([]byte("\n"))
	mac.Write([]byte(nonce))
	mac.Write([]byte("\n"))
	mac.Write(body)
	mac.Write([]byte("\n"))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (p *CallbackParser) decrypt(ciphertext, nonce, associatedData string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(p.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, errors.New("paymentgw: bad resource nonce length")
	}

	return gcm.Open(nil, []byte(nonce), raw, []byte(associatedData))
}

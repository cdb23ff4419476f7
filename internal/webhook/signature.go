package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// SignaturePrefix precedes the hex HMAC in the signature header
const SignaturePrefix = "sha256="

// SignPayload serializes a ledger event and signs it with HMAC-SHA256 over
// "{timestamp}.{event_id}.{body}"
func SignPayload(secret string, event *domain.LedgerEvent, timestamp int64) (payload []byte, signature string, err error) {
	payload, err = json.Marshal(event)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal event: %w", err)
	}

	return payload, Signature(secret, event.ID, timestamp, payload), nil
}

// Signature computes the signature header value for a payload
func Signature(secret string, eventID string, timestamp int64, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(h, "%d.%s.", timestamp, eventID)
	h.Write(payload)
	return SignaturePrefix + hex.EncodeToString(h.Sum(nil))
}

// Verify reports whether signature matches the payload, in constant time
func Verify(secret string, eventID string, timestamp int64, payload []byte, signature string) bool {
	expected := Signature(secret, eventID, timestamp, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

package stripe

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v76/webhook"
)

// SignatureHeader builds a Stripe-Signature value for payload, as Stripe
// would send it. Used by tests and local tooling.
func SignatureHeader(payload []byte, secret string, at time.Time) string {
	sig := webhook.ComputeSignature(at, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(sig))
}

package stripe_notification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// SignatureHeader carries Stripe's `t=<ts>,v1=<hmac>` webhook signature.
const SignatureHeader = "Stripe-Signature"

// MaxBodyBytes bounds the size of a webhook body read for verification.
const MaxBodyBytes = 1 << 20

var ErrInvalidSignature = errors.New("invalid stripe signature")

// Verifier authenticates webhook payloads against the endpoint signing secret.
type Verifier struct {
	secret    string
	tolerance time.Duration
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &Verifier{secret: secret, tolerance: tolerance}
}

// Verify checks header against the raw payload and decodes the event envelope.
// Every failure, including an unset secret, wraps ErrInvalidSignature.
func (v *Verifier) Verify(payload []byte, header string) (*stripe.Event, error) {
	if v == nil || strings.TrimSpace(v.secret) == "" {
		return nil, fmt.Errorf("%w: signing secret not configured", ErrInvalidSignature)
	}
	if strings.TrimSpace(header) == "" {
		return nil, fmt.Errorf("%w: missing %s header", ErrInvalidSignature, SignatureHeader)
	}
	event, err := webhook.ConstructEventWithOptions(payload, header, v.secret, webhook.ConstructEventOptions{
		Tolerance:                v.tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", ErrInvalidSignature, event.ID)
	}
	return &event, nil
}

// Sign produces a valid signature header for payload. It is used by tests and local tooling.
func Sign(secret string, payload []byte, at time.Time) string {
	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   payload,
		Secret:    secret,
		Timestamp: at,
	})
	return signed.Header
}

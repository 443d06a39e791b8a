package payments

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured is returned by every gateway-backed operation
	// when no processor credentials were supplied at startup.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	// ErrInvalidSignature means a webhook payload failed the
	// authenticity check and must be discarded, not retried.
	ErrInvalidSignature = errors.New("invalid webhook signature")
)

const IntentSucceeded = "succeeded"

const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

type Intent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
}

type WebhookEvent struct {
	Type     string
	IntentID string
	OrderID  string
}

// Gateway is the external payment processor capability. Handlers and
// the order engine receive it injected; a nil Gateway means the
// integration is unconfigured and operations fail fast with
// ErrNotConfigured instead of reaching for a global client.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64, currency, orderID string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	ConstructWebhookEvent(payload []byte, sigHeader string) (*WebhookEvent, error)
}

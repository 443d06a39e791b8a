package payments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStripeGateway(t *testing.T) {
	require.Nil(t, NewStripeGateway("", "whsec_x"), "no secret key means no gateway")
	require.NotNil(t, NewStripeGateway("sk_test_123", "whsec_x"))
}

func TestConstructWebhookEventRejectsBadSignature(t *testing.T) {
	g := NewStripeGateway("sk_test_123", "whsec_x")

	_, err := g.ConstructWebhookEvent([]byte(`{"type":"payment_intent.succeeded"}`), "t=1,v1=bogus")
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = g.ConstructWebhookEvent([]byte(`{}`), "")
	require.ErrorIs(t, err, ErrInvalidSignature)
}

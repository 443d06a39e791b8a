package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct {
		from, to OrderStatus
	}{
		{OrderPending, OrderProcessing},
		{OrderPending, OrderShipped},
		{OrderPending, OrderDelivered},
		{OrderPending, OrderCancelled},
		{OrderProcessing, OrderShipped},
		{OrderProcessing, OrderDelivered},
		{OrderProcessing, OrderCancelled},
		{OrderShipped, OrderDelivered},
		{OrderShipped, OrderCancelled},
	}
	for _, tc := range allowed {
		require.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct {
		from, to OrderStatus
	}{
		{OrderProcessing, OrderPending},
		{OrderShipped, OrderProcessing},
		{OrderDelivered, OrderShipped},
		{OrderDelivered, OrderCancelled},
		{OrderCancelled, OrderPending},
		{OrderCancelled, OrderDelivered},
	}
	for _, tc := range denied {
		require.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}

	// re-writing the current status is always a no-op
	for _, s := range []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled} {
		require.True(t, s.CanTransitionTo(s))
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	require.True(t, OrderDelivered.Terminal())
	require.True(t, OrderCancelled.Terminal())
	require.False(t, OrderPending.Terminal())
	require.False(t, OrderProcessing.Terminal())
	require.False(t, OrderShipped.Terminal())
}

func TestPaymentStatusTransactionStatus(t *testing.T) {
	require.Equal(t, TransactionCompleted, PaymentPaid.TransactionStatus())
	require.Equal(t, TransactionRefunded, PaymentRefunded.TransactionStatus())
	require.Equal(t, TransactionFailed, PaymentFailed.TransactionStatus())
	require.Equal(t, TransactionPending, PaymentPending.TransactionStatus())
}

func TestEnumValidity(t *testing.T) {
	require.True(t, PaymentMethodJazzCash.Valid())
	require.False(t, PaymentMethod("Barter").Valid())
	require.True(t, PaymentRefunded.Valid())
	require.False(t, PaymentStatus("Maybe").Valid())
	require.True(t, OrderShipped.Valid())
	require.False(t, OrderStatus("Lost").Valid())
}

func TestDiscountedPrice(t *testing.T) {
	require.Equal(t, 24.99, Product{Price: 24.99}.DiscountedPrice())
	require.Equal(t, 30.0, Product{Price: 40, Discount: 25}.DiscountedPrice())
	require.Equal(t, 22.49, Product{Price: 24.99, Discount: 10}.DiscountedPrice())
	require.Equal(t, 24.99, Product{Price: 24.99, Discount: -5}.DiscountedPrice())
}

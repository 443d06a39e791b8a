package models

type PaymentMethod string

const (
	PaymentMethodCreditCard     PaymentMethod = "CreditCard"
	PaymentMethodJazzCash       PaymentMethod = "JazzCash"
	PaymentMethodEasyPaisa      PaymentMethod = "EasyPaisa"
	PaymentMethodCashOnDelivery PaymentMethod = "CashOnDelivery"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodJazzCash, PaymentMethodEasyPaisa, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// TransactionStatus returns the ledger status matching this payment status.
func (s PaymentStatus) TransactionStatus() TransactionStatus {
	switch s {
	case PaymentPaid:
		return TransactionCompleted
	case PaymentRefunded:
		return TransactionRefunded
	case PaymentFailed:
		return TransactionFailed
	default:
		return TransactionPending
	}
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further fulfillment transitions are allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal
// fulfillment transition. Writing the current status again is a no-op
// and always allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	switch s {
	case OrderPending:
		return next == OrderProcessing || next == OrderShipped || next == OrderDelivered || next == OrderCancelled
	case OrderProcessing:
		return next == OrderShipped || next == OrderDelivered || next == OrderCancelled
	case OrderShipped:
		return next == OrderDelivered || next == OrderCancelled
	}
	return false
}

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "Pending"
	TransactionCompleted TransactionStatus = "Completed"
	TransactionFailed    TransactionStatus = "Failed"
	TransactionRefunded  TransactionStatus = "Refunded"
)

type BlogStatus string

const (
	BlogDraft     BlogStatus = "Draft"
	BlogPublished BlogStatus = "Published"
)

const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleStaff      = "Staff"
)

package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/botanicglows/backend/internal/events"
	"github.com/botanicglows/backend/internal/logging"
	"github.com/botanicglows/backend/internal/models"
	"github.com/botanicglows/backend/internal/payments"
)

var (
	ErrValidation        = errors.New("validation")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrPaymentIncomplete means the processor reported an intent that
	// has not succeeded; nothing was mutated locally.
	ErrPaymentIncomplete = errors.New("payment not completed")
)

// Engine coordinates orders, their stock reservations and the
// transaction ledger. It is the sole writer of Transaction records and
// the only component allowed to change an order's payment status.
type Engine struct {
	DB       *gorm.DB
	Gateway  payments.Gateway
	Producer *events.Producer
}

type CreateOrderItem struct {
	ProductID uint `json:"productId"`
	Quantity  uint `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerName    string               `json:"customerName"`
	CustomerEmail   string               `json:"customerEmail"`
	CustomerPhone   string               `json:"customerPhone"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	ShippingAddress models.Address       `json:"shippingAddress"`
	Notes           string               `json:"notes"`
	Items           []CreateOrderItem    `json:"items"`
}

type UpdateOrderRequest struct {
	OrderStatus    models.OrderStatus   `json:"orderStatus"`
	PaymentStatus  models.PaymentStatus `json:"paymentStatus"`
	TrackingNumber *string              `json:"trackingNumber"`
}

// CreateOrder places a new order at checkout: it snapshots each
// product's name/price/image, computes the total from the snapshots and
// decrements stock, all in one transaction. Placing the order reserves
// the stock; only cancellation returns it.
func (e *Engine) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: customer name and email are required", ErrValidation)
	}
	if !req.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: invalid payment method", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.ShippingAddress.Street == "" || req.ShippingAddress.City == "" {
		return nil, fmt.Errorf("%w: shipping street and city are required", ErrValidation)
	}
	if req.ShippingAddress.Country == "" {
		req.ShippingAddress.Country = models.DefaultCountry
	}

	var order models.Order
	txErr := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var (
			items []models.OrderItem
			total float64
		)
		for _, it := range req.Items {
			if it.Quantity < 1 {
				return fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
			}

			var p models.Product
			if err := tx.First(&p, it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, it.ProductID)
				}
				return err
			}
			if !p.IsActive {
				return fmt.Errorf("%w: product %q is not available", ErrValidation, p.Name)
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", p.ID, it.Quantity).
				Update("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %q", ErrInsufficientStock, p.Name)
			}

			price := p.DiscountedPrice()
			items = append(items, models.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Image:     p.Images,
				Price:     price,
				Quantity:  it.Quantity,
			})
			total += price * float64(it.Quantity)
		}
		total = math.Round(total*100) / 100

		order = models.Order{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Items:           items,
			TotalAmount:     total,
			PaymentMethod:   req.PaymentMethod,
			PaymentStatus:   models.PaymentPending,
			OrderStatus:     models.OrderPending,
			ShippingAddress: req.ShippingAddress,
			Notes:           req.Notes,
		}

		var customer models.Customer
		err := tx.Where("email = ?", req.CustomerEmail).First(&customer).Error
		switch {
		case err == nil:
			if customer.IsBlocked {
				return fmt.Errorf("%w: account is blocked", ErrValidation)
			}
			order.CustomerID = &customer.ID
			if err := tx.Model(&customer).Updates(map[string]any{
				"total_orders": gorm.Expr("total_orders + 1"),
				"total_spent":  gorm.Expr("total_spent + ?", total),
			}).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// guest checkout
		default:
			return err
		}

		return tx.Create(&order).Error
	})
	if txErr != nil {
		return nil, txErr
	}

	e.publish(ctx, events.TopicOrderEvents, order.ID, map[string]any{
		"type":    "order_created",
		"orderID": order.ID,
		"total":   order.TotalAmount,
		"method":  order.PaymentMethod,
	})
	return &order, nil
}

// ConfirmCOD marks an existing order as cash-on-delivery and opens its
// pending ledger entry. Replays reuse the "cod:<id>" idempotency key,
// so confirming twice leaves a single transaction.
func (e *Engine) ConfirmCOD(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	txErr := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		order.PaymentMethod = models.PaymentMethodCashOnDelivery
		order.PaymentStatus = models.PaymentPending
		if err := tx.Model(&order).Updates(map[string]any{
			"payment_method": order.PaymentMethod,
			"payment_status": order.PaymentStatus,
		}).Error; err != nil {
			return err
		}

		return e.upsertTransaction(tx, fmt.Sprintf("cod:%d", order.ID), models.Transaction{
			OrderID:       order.ID,
			Amount:        order.TotalAmount,
			PaymentMethod: models.PaymentMethodCashOnDelivery,
			Status:        models.TransactionPending,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	e.publish(ctx, events.TopicPaymentEvents, order.ID, map[string]any{
		"type":    "cod_confirmed",
		"orderID": order.ID,
		"amount":  order.TotalAmount,
	})
	return &order, nil
}

// CreateIntent asks the processor for a client-side confirmation token.
// No local state changes; the processor is the source of truth until
// the payment is verified.
func (e *Engine) CreateIntent(ctx context.Context, amount float64, currency string, orderID uint) (*payments.Intent, error) {
	if e.Gateway == nil {
		return nil, payments.ErrNotConfigured
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: valid amount is required", ErrValidation)
	}
	if currency == "" {
		currency = "usd"
	}

	minor := int64(math.Round(amount * 100))
	ref := ""
	if orderID != 0 {
		ref = strconv.FormatUint(uint64(orderID), 10)
	}
	return e.Gateway.CreateIntent(ctx, minor, currency, ref)
}

// VerifyPayment queries the processor for the intent's status. A
// succeeded intent marks the order paid and records a completed ledger
// entry keyed by the intent id, which also dedupes the race against the
// webhook path observing the same success.
func (e *Engine) VerifyPayment(ctx context.Context, intentID string, orderID uint) (*payments.Intent, error) {
	if e.Gateway == nil {
		return nil, payments.ErrNotConfigured
	}
	if intentID == "" {
		return nil, fmt.Errorf("%w: paymentIntentId is required", ErrValidation)
	}

	intent, err := e.Gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != payments.IntentSucceeded {
		return intent, fmt.Errorf("%w: status %q", ErrPaymentIncomplete, intent.Status)
	}

	if orderID != 0 {
		if err := e.settleOrder(ctx, orderID, intentID, models.PaymentPaid, models.TransactionCompleted); err != nil {
			return nil, err
		}
		e.publish(ctx, events.TopicPaymentEvents, orderID, map[string]any{
			"type":     "payment_verified",
			"orderID":  orderID,
			"intentID": intentID,
		})
	}
	return intent, nil
}

// HandleWebhook applies an asynchronous processor callback. Payloads
// that fail the signature check are rejected outright; event types the
// engine does not understand are accepted and ignored so the processor
// does not redeliver them.
func (e *Engine) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if e.Gateway == nil {
		return payments.ErrNotConfigured
	}

	ev, err := e.Gateway.ConstructWebhookEvent(payload, sigHeader)
	if err != nil {
		return err
	}

	var (
		payStatus models.PaymentStatus
		txnStatus models.TransactionStatus
	)
	switch ev.Type {
	case payments.EventPaymentSucceeded:
		payStatus, txnStatus = models.PaymentPaid, models.TransactionCompleted
	case payments.EventPaymentFailed:
		payStatus, txnStatus = models.PaymentFailed, models.TransactionFailed
	default:
		logging.FromContext(ctx).Info("ignoring webhook event", "type", ev.Type)
		return nil
	}

	if ev.OrderID == "" {
		return nil
	}
	id, err := strconv.ParseUint(ev.OrderID, 10, 64)
	if err != nil {
		logging.FromContext(ctx).Warn("webhook carries malformed order id", "orderID", ev.OrderID)
		return nil
	}

	if err := e.settleOrder(ctx, uint(id), ev.IntentID, payStatus, txnStatus); err != nil {
		// An unknown order is not the processor's problem; accept the
		// event so it is not redelivered.
		if errors.Is(err, ErrNotFound) {
			logging.FromContext(ctx).Warn("webhook references unknown order", "orderID", id)
			return nil
		}
		return err
	}

	e.publish(ctx, events.TopicPaymentEvents, uint(id), map[string]any{
		"type":     ev.Type,
		"orderID":  id,
		"intentID": ev.IntentID,
	})
	return nil
}

// settleOrder records the outcome of one processor payment event:
// order payment status, processor reference and the ledger entry keyed
// by the intent id, atomically.
func (e *Engine) settleOrder(ctx context.Context, orderID uint, intentID string, payStatus models.PaymentStatus, txnStatus models.TransactionStatus) error {
	return e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if err := tx.Model(&order).Updates(map[string]any{
			"payment_status":           payStatus,
			"stripe_payment_intent_id": intentID,
		}).Error; err != nil {
			return err
		}

		return e.upsertTransaction(tx, intentID, models.Transaction{
			OrderID:               order.ID,
			Amount:                order.TotalAmount,
			PaymentMethod:         models.PaymentMethodCreditCard,
			Status:                txnStatus,
			StripePaymentIntentID: intentID,
		})
	})
}

// UpdateOrder is the administrative mutation path: fulfillment status,
// payment status and tracking number, any subset. Delivering a
// cash-on-delivery order forces its payment status to Paid; cancelling
// restores stock exactly once, guarded by a compare-and-swap on the
// fulfillment status.
func (e *Engine) UpdateOrder(ctx context.Context, orderID uint, req UpdateOrderRequest) (*models.Order, error) {
	if req.OrderStatus != "" && !req.OrderStatus.Valid() {
		return nil, fmt.Errorf("%w: invalid order status %q", ErrValidation, req.OrderStatus)
	}
	if req.PaymentStatus != "" && !req.PaymentStatus.Valid() {
		return nil, fmt.Errorf("%w: invalid payment status %q", ErrValidation, req.PaymentStatus)
	}

	var (
		order    models.Order
		restored bool
	)
	txErr := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if req.OrderStatus != "" && !order.OrderStatus.CanTransitionTo(req.OrderStatus) {
			return fmt.Errorf("%w: cannot move order from %s to %s", ErrValidation, order.OrderStatus, req.OrderStatus)
		}

		if req.PaymentStatus != "" {
			order.PaymentStatus = req.PaymentStatus
		}
		if req.TrackingNumber != nil {
			order.TrackingNumber = *req.TrackingNumber
		}

		switch {
		case req.OrderStatus == models.OrderCancelled:
			// CAS guard: only the write that actually flips the status
			// away from Cancelled restores stock, so concurrent or
			// repeated cancellations cannot double-restore.
			res := tx.Model(&models.Order{}).
				Where("id = ? AND order_status <> ?", order.ID, models.OrderCancelled).
				Update("order_status", models.OrderCancelled)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 1 {
				restored = true
				for _, it := range order.Items {
					if err := tx.Model(&models.Product{}).
						Where("id = ?", it.ProductID).
						Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error; err != nil {
						return err
					}
				}
			}
			order.OrderStatus = models.OrderCancelled
		case req.OrderStatus != "":
			order.OrderStatus = req.OrderStatus
		}

		// Cash is collected at delivery: marking a COD order delivered
		// pays it, whatever payment status came with the request. Later
		// updates (a refund, say) are left alone.
		if req.OrderStatus == models.OrderDelivered && order.PaymentMethod == models.PaymentMethodCashOnDelivery {
			order.PaymentStatus = models.PaymentPaid
		}

		if err := tx.Model(&order).Updates(map[string]any{
			"order_status":    order.OrderStatus,
			"payment_status":  order.PaymentStatus,
			"tracking_number": order.TrackingNumber,
		}).Error; err != nil {
			return err
		}

		if req.PaymentStatus != "" {
			if err := e.syncTransaction(tx, order.ID, order.PaymentStatus.TransactionStatus()); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	e.publish(ctx, events.TopicOrderEvents, order.ID, map[string]any{
		"type":          "order_updated",
		"orderID":       order.ID,
		"orderStatus":   order.OrderStatus,
		"paymentStatus": order.PaymentStatus,
		"stockRestored": restored,
	})
	return &order, nil
}

// Get returns one order with its items.
func (e *Engine) Get(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := e.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

type InvoiceLine struct {
	Name     string  `json:"name"`
	Quantity uint    `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

type Invoice struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Date          time.Time            `json:"date"`
	CustomerName  string               `json:"customerName"`
	CustomerEmail string               `json:"customerEmail"`
	CustomerPhone string               `json:"customerPhone"`
	Address       models.Address       `json:"address"`
	Items         []InvoiceLine        `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Total         float64              `json:"total"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// BuildInvoice renders an order as a printable invoice payload.
func (e *Engine) BuildInvoice(ctx context.Context, orderID uint) (*Invoice, error) {
	order, err := e.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		InvoiceNumber: fmt.Sprintf("INV-%08d", order.ID),
		Date:          order.CreatedAt,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Address:       order.ShippingAddress,
		Total:         order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: order.PaymentStatus,
	}
	for _, it := range order.Items {
		line := InvoiceLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    it.Price * float64(it.Quantity),
		}
		inv.Subtotal += line.Total
		inv.Items = append(inv.Items, line)
	}
	return inv, nil
}

// upsertTransaction creates or updates the ledger entry for one payment
// event. The unique idempotency key makes replays of the same event a
// status refresh instead of a duplicate row.
func (e *Engine) upsertTransaction(tx *gorm.DB, key string, txn models.Transaction) error {
	if key == "" {
		txn.IdempotencyKey = fmt.Sprintf("order:%d", txn.OrderID)
	} else {
		txn.IdempotencyKey = key
	}

	var existing models.Transaction
	err := tx.Where("idempotency_key = ?", txn.IdempotencyKey).First(&existing).Error
	if err == nil {
		if existing.Status == txn.Status {
			return nil
		}
		return tx.Model(&existing).Update("status", txn.Status).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&txn).Error
}

// syncTransaction mirrors an admin-supplied payment status onto the
// order's ledger entry. A missing entry is not an error.
func (e *Engine) syncTransaction(tx *gorm.DB, orderID uint, status models.TransactionStatus) error {
	var txn models.Transaction
	err := tx.Where("order_id = ?", orderID).Order("id DESC").First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return tx.Model(&txn).Update("status", status).Error
}

func (e *Engine) publish(ctx context.Context, topic string, orderID uint, event map[string]any) {
	if e.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.Producer.PublishEvent(pubCtx, topic, strconv.FormatUint(uint64(orderID), 10), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "err", err, "topic", topic)
	}
}

package models

import (
	"math"
	"time"
)

const DefaultCountry = "Pakistan"

type Product struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name         string    `gorm:"not null;size:100"               json:"name"`
	Description  string    `gorm:"not null;size:2000"              json:"description"`
	Price        float64   `gorm:"not null;check:price >= 0"       json:"price"`
	CategoryID   uint      `gorm:"index;not null"                  json:"categoryId"`
	Category     *Category `json:"category,omitempty"`
	Images       string    `gorm:"type:text"                       json:"images"`
	Ingredients  string    `gorm:"type:text"                       json:"ingredients"`
	Stock        int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	IsActive     bool      `gorm:"default:true"                    json:"isActive"`
	Discount     float64   `gorm:"default:0"                       json:"discount"`
	Rating       float64   `gorm:"default:0"                       json:"rating"`
	NumReviews   int       `gorm:"default:0"                       json:"numReviews"`
	IsNewArrival bool      `gorm:"default:false"                   json:"isNewArrival"`
	IsBestSeller bool      `gorm:"default:false"                   json:"isBestSeller"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DiscountedPrice applies the percentage discount, rounded to cents.
func (p Product) DiscountedPrice() float64 {
	if p.Discount <= 0 {
		return p.Price
	}
	return math.Round(p.Price*(1-p.Discount/100)*100) / 100
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null;size:50"  json:"name"`
	Description string    `gorm:"default:''"               json:"description"`
	IsActive    bool      `gorm:"default:true"             json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Admin struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"not null;size:50"         json:"name"`
	Email        string     `gorm:"unique;not null"          json:"email"`
	PasswordHash string     `gorm:"not null"                 json:"-"`
	Role         string     `gorm:"not null;default:Admin"   json:"role"`
	IsActive     bool       `gorm:"default:true"             json:"isActive"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type Customer struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null;size:50"         json:"name"`
	Email       string    `gorm:"unique;not null"          json:"email"`
	Phone       string    `json:"phone"`
	Address     Address   `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	IsBlocked   bool      `gorm:"default:false"            json:"isBlocked"`
	TotalOrders int       `gorm:"default:0"                json:"totalOrders"`
	TotalSpent  float64   `gorm:"default:0"                json:"totalSpent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type Order struct {
	ID                    uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID            *uint         `gorm:"index"                    json:"customerId,omitempty"`
	CustomerName          string        `gorm:"not null"                 json:"customerName"`
	CustomerEmail         string        `gorm:"index;not null"           json:"customerEmail"`
	CustomerPhone         string        `json:"customerPhone"`
	Items                 []OrderItem   `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount           float64       `gorm:"not null;check:total_amount >= 0" json:"totalAmount"`
	PaymentMethod         PaymentMethod `gorm:"not null"                 json:"paymentMethod"`
	PaymentStatus         PaymentStatus `gorm:"not null;default:Pending" json:"paymentStatus"`
	OrderStatus           OrderStatus   `gorm:"index;not null;default:Pending" json:"orderStatus"`
	ShippingAddress       Address       `gorm:"embedded;embeddedPrefix:shipping_" json:"shippingAddress"`
	TrackingNumber        string        `gorm:"default:''"               json:"trackingNumber"`
	StripePaymentIntentID string        `gorm:"index"                    json:"stripePaymentIntentId,omitempty"`
	Notes                 string        `json:"notes,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	UpdatedAt             time.Time     `json:"updatedAt"`
}

// OrderItem is a snapshot of a product at the time the order was placed.
// Items are never edited after creation, only order status fields are.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index;not null"           json:"orderId"`
	ProductID uint    `gorm:"not null"                 json:"productId"`
	Name      string  `gorm:"not null"                 json:"name"`
	Image     string  `json:"image"`
	Price     float64 `gorm:"not null"                 json:"price"`
	Quantity  uint    `gorm:"not null;check:quantity >= 1" json:"quantity"`
}

// Transaction is one financial-ledger entry against an order. The
// idempotency key makes each payment event apply at most once: COD
// confirmations use "cod:<orderID>", card payments and webhook events
// use the processor's intent id.
type Transaction struct {
	ID                    uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID               uint              `gorm:"index;not null"           json:"orderId"`
	Order                 *Order            `json:"order,omitempty"`
	Amount                float64           `gorm:"not null"                 json:"amount"`
	PaymentMethod         PaymentMethod     `gorm:"not null"                 json:"paymentMethod"`
	Status                TransactionStatus `gorm:"index;not null;default:Pending" json:"status"`
	StripePaymentIntentID string            `gorm:"index"                    json:"stripePaymentIntentId,omitempty"`
	IdempotencyKey        string            `gorm:"uniqueIndex;not null"     json:"-"`
	Metadata              string            `gorm:"type:text"                json:"metadata,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

type Content struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string    `gorm:"unique;not null"          json:"type"`
	Data      string    `gorm:"type:text;not null"       json:"-"`
	UpdatedBy uint      `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BlogPost struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string     `gorm:"not null;size:200"        json:"title"`
	Content   string     `gorm:"type:text;not null"       json:"content"`
	Image     string     `gorm:"default:''"               json:"image"`
	Author    string     `gorm:"default:'Botanic Glows'"  json:"author"`
	Status    BlogStatus `gorm:"not null;default:Draft"   json:"status"`
	Tags      string     `gorm:"type:text"                json:"tags"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type ShippingRate struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"               json:"id"`
	Province  string    `gorm:"uniqueIndex:idx_province_city;not null" json:"province"`
	City      string    `gorm:"uniqueIndex:idx_province_city;not null" json:"city"`
	Rate      float64   `gorm:"not null;default:0"                     json:"rate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package order

import (
	"errors"
	"time"
)

// Order statuses. Only admins move an order through this lifecycle after
// checkout creates it as pending.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// Accepted payment methods. Payment is simulated; orders are written with
// payment_status=completed without touching a processor.
const (
	PaymentCreditCard   = "credit_card"
	PaymentDebitCard    = "debit_card"
	PaymentPaypal       = "paypal"
	PaymentBankTransfer = "bank_transfer"
)

const (
	PaymentStatusCompleted = "completed"

	DefaultCountry = "España"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNotFound       = errors.New("order not found")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrInvalidPayment = errors.New("invalid payment method")
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPaypal, PaymentBankTransfer:
		return true
	}
	return false
}

// Item is an immutable snapshot of one cart line at checkout time. Name and
// image are denormalized so later product edits never rewrite history.
type Item struct {
	ID           int     `json:"id"`
	OrderID      int     `json:"orderId"`
	ProductID    int     `json:"productId"`
	ProductName  string  `json:"productName"`
	ProductImage string  `json:"productImage"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unitPrice"`
	TotalPrice   float64 `json:"totalPrice"`
}

// ShippingInfo is the destination block captured on the order row.
type ShippingInfo struct {
	Name       string
	Email      string
	Phone      string
	Address    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Order is the financial record created from a cart snapshot. The monetary
// fields are fixed at creation and never recomputed.
type Order struct {
	ID                 int       `json:"id"`
	UserID             int       `json:"userId"`
	OrderNumber        string    `json:"orderNumber"`
	Status             string    `json:"status"`
	Subtotal           float64   `json:"subtotal"`
	TaxAmount          float64   `json:"taxAmount"`
	ShippingAmount     float64   `json:"shippingAmount"`
	TotalAmount        float64   `json:"totalAmount"`
	ShippingName       string    `json:"shippingName"`
	ShippingEmail      string    `json:"shippingEmail"`
	ShippingPhone      string    `json:"shippingPhone"`
	ShippingAddress    string    `json:"shippingAddress"`
	ShippingCity       string    `json:"shippingCity"`
	ShippingState      string    `json:"shippingState"`
	ShippingPostalCode string    `json:"shippingPostalCode"`
	ShippingCountry    string    `json:"shippingCountry"`
	PaymentMethod      string    `json:"paymentMethod"`
	PaymentStatus      string    `json:"paymentStatus"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
	Items              []Item    `json:"items,omitempty"`
}

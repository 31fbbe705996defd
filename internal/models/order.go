package models

import (
	"math/rand"
	"time"
)

const (
	OrderStatusDraft     = "draft"
	OrderStatusSubmitted = "submitted"

	PayStatusUnpaid = "unpaid"
	PayStatusPaid   = "paid"

	DeliveryStatusUndelivered = "undelivered"
	DeliveryStatusDelivered   = "delivered"
)

// Order is a single C2B submission. OrderNo stays nil until the order is
// submitted for the first time; revoking does not clear it.
type Order struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index;not null" json:"userId"`
	OrderNo        *string   `gorm:"size:16;index" json:"orderNo"`
	Status         string    `gorm:"size:16;not null;default:draft;index" json:"status"`
	PayStatus      string    `gorm:"size:16;not null;default:unpaid" json:"payStatus"`
	DeliveryStatus string    `gorm:"size:16;not null;default:undelivered" json:"deliveryStatus"`
	Remark         string    `gorm:"size:255" json:"remark"`
	IsInitial      bool      `json:"isInitial"`
	Quantity       int       `json:"quantity"`
	CompanyName    string    `gorm:"size:128" json:"companyName"`
	CreditCode     string    `gorm:"size:64" json:"creditCode"`
	BankName       string    `gorm:"size:128" json:"bankName"`
	BankAccount    string    `gorm:"size:64" json:"bankAccount"`
	AuthName       string    `gorm:"size:64" json:"authName"`
	AuthPhone      string    `gorm:"size:20" json:"authPhone"`
	AuthIdcard     string    `gorm:"size:32" json:"authIdcard"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`

	User   *User   `json:"user,omitempty"`
	Images []Image `json:"images"`
}

const (
	ImageTypeLicense     = "license"
	ImageTypeAuth        = "auth"
	ImageTypeIdcardFront = "idcard_front"
	ImageTypeIdcardBack  = "idcard_back"
)

// Image is a typed document attached to an order. URL points at the public
// path of the stored file.
type Image struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"orderId"`
	Type      string    `gorm:"size:20;not null" json:"type"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

const orderNoAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNo returns "C2B" followed by 8 characters from [A-Z0-9]. Numbers
// are random-looking, not collision-checked against existing orders.
func NewOrderNo() string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = orderNoAlphabet[rand.Intn(len(orderNoAlphabet))]
	}
	return "C2B" + string(b)
}

package models

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// ValidOrderStatus reports whether s is one of the fixed order states.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FirstName    string    `gorm:"not null"                 json:"first_name"`
	LastName     string    `gorm:"not null"                 json:"last_name"`
	Role         string    `gorm:"not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null"                 json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `gorm:"not null"                 json:"price"`
	StockQuantity int       `gorm:"not null"                 json:"stock_quantity"`
	CategoryID    uint      `gorm:"index;not null"           json:"category_id"`
	Images        []string  `gorm:"serializer:json"          json:"images"`
	Featured      bool      `gorm:"default:false"            json:"featured"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	UserID    uint      `gorm:"index;not null"              json:"user_id"`
	ProductID uint      `gorm:"not null"                    json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"  json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

type Address struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Street    string    `gorm:"not null"                 json:"street"`
	City      string    `gorm:"not null"                 json:"city"`
	State     string    `gorm:"not null"                 json:"state"`
	ZipCode   string    `gorm:"not null"                 json:"zip_code"`
	Country   string    `gorm:"not null"                 json:"country"`
	IsDefault bool      `gorm:"default:false"            json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

type Order struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID            uint      `gorm:"index;not null"           json:"user_id"`
	Status            string    `gorm:"not null;default:pending" json:"status"`
	TotalAmount       float64   `gorm:"not null"                 json:"total_amount"`
	ShippingAddressID uint      `gorm:"not null"                 json:"shipping_address_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	ShippingAddress *Address    `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"           json:"items,omitempty"`
}

// OrderItem captures the price at order time, decoupled from the
// current Product.Price.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	OrderID   uint      `gorm:"index;not null"             json:"order_id"`
	ProductID uint      `gorm:"not null"                   json:"product_id"`
	Quantity  uint      `gorm:"check:quantity>0"           json:"quantity"`
	Price     float64   `gorm:"not null"                   json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	Role      string `gorm:"not null"            json:"role"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}

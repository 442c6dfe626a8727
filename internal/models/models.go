package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prices go over the wire as JSON numbers, the browser client sums them.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"              json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"              json:"email"`
	PasswordHash string    `gorm:"not null"                          json:"-"`
	Role         Role      `gorm:"type:varchar(16);not null;default:customer" json:"role"`
	CreatedAt    time.Time `gorm:"not null"                          json:"created_at"`
}

type Profile struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"          json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User           *User     `gorm:"constraint:OnDelete:CASCADE"   json:"-"`
	FullName       *string   `json:"full_name"`
	Address        *string   `json:"address"`
	GPSLocation    *string   `gorm:"column:gps_location"           json:"gps_location"`
	PhoneNumber    *string   `json:"phone_number"`
	Birthday       *string   `json:"birthday"`
	Gender         *string   `json:"gender"`
	ReferralSource *string   `json:"referral_source"`
	ReferralID     string    `gorm:"uniqueIndex;not null"          json:"referral_id"`
}

type Order struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"                   json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;index;not null"               json:"user_id"`
	User       *User           `gorm:"constraint:OnDelete:CASCADE"            json:"-"`
	ProductID  string          `gorm:"not null"                               json:"product_id"`
	Quantity   int             `gorm:"not null;check:quantity > 0"            json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null"            json:"total_price"`
	Status     OrderStatus     `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	CreatedAt  time.Time       `gorm:"index;not null"                         json:"created_at"`
}

// AdminProfile is a profile row joined with its owner's email and sign-up time.
type AdminProfile struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	FullName       *string   `json:"full_name"`
	Address        *string   `json:"address"`
	GPSLocation    *string   `gorm:"column:gps_location" json:"gps_location"`
	PhoneNumber    *string   `json:"phone_number"`
	Birthday       *string   `json:"birthday"`
	Gender         *string   `json:"gender"`
	ReferralSource *string   `json:"referral_source"`
	ReferralID     string    `json:"referral_id"`
	Email          string    `json:"email"`
	JoinedAt       time.Time `json:"joined_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

func (Order) TableName() string {
	return "orders"
}

package transport

import (
	"time"

	"github.com/shopspring/decimal"
)

type CredentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserDTO   `json:"user"`
}

type AuthResponse struct {
	User    UserDTO `json:"user"`
	Session Session `json:"session"`
}

// ProfilePatch carries a merge patch: nil fields keep their stored value.
type ProfilePatch struct {
	FullName       *string `json:"full_name"`
	Address        *string `json:"address"`
	GPSLocation    *string `json:"gps_location"`
	PhoneNumber    *string `json:"phone_number"`
	Birthday       *string `json:"birthday"`
	Gender         *string `json:"gender"`
	ReferralSource *string `json:"referral_source"`
}

type CreateOrderRequest struct {
	ProductID  string          `json:"product_id"  validate:"required"`
	Quantity   int             `json:"quantity"    validate:"gt=0"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type CheckoutRequest struct {
	Items []CreateOrderRequest `json:"items" validate:"required,min=1,dive"`
}

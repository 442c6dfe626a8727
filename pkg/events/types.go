package events

import "time"

type UserEvent struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	TotalPrice string    `json:"total_price,omitempty"`
	At         time.Time `json:"at"`
}

const (
	UserSignedUp   = "user_signed_up"
	UserLoggedIn   = "user_logged_in"
	OrderCreated   = "order_created"
	OrderCancelled = "order_cancelled"
)

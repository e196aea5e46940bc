package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReminderTicket is one scheduled expiration reminder. Identifier is derived
// from the product id, so writing a ticket is an upsert: at most one ticket
// can exist per product.
type ReminderTicket struct {
	Identifier string    `gorm:"primary_key" json:"identifier"`
	ProductID  uuid.UUID `json:"product_id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	TriggerAt  time.Time `json:"trigger_at"`
	Status     string    `json:"status"` // "Pending", "Sent", "Failed"

	Timestamp
}

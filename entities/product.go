package entities

import (
	"time"

	"github.com/google/uuid"
)

// Product is one tracked food item. Freshness is never stored; it is
// recomputed from ExpirationDate on every read.
type Product struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	ExpirationDate time.Time `gorm:"not null" json:"expiration_date"`
	AddedDate      time.Time `json:"added_date"`
	ImageURL       string    `json:"image_url,omitempty"`
	NotificationID *string   `json:"notification_id,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

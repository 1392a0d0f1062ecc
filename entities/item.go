package entities

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Category         string    `json:"category"`
	PurchaseDate     time.Time `json:"purchase_date"`
	ExpiryDate       time.Time `json:"expiry_date"`
	Quantity         float64   `json:"quantity"`
	Unit             string    `json:"unit"` // "item", "g", "kg", "pcs", "box", "bottle"
	StorageCondition string    `json:"storage_condition"`
	ItemCondition    string    `json:"item_condition_on_purchase"`
	Notes            string    `json:"notes,omitempty"`
	IsConsumed       bool      `json:"is_consumed"`
	IsWasted         bool      `json:"is_wasted"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	ExpirySource     string    `json:"expiry_source"` // "manual", "prediction", "fallback"

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Offer represents one comparable vacation proposal, holding one value per column
type Offer struct {
	ID        uuid.UUID    `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at" gorm:"column:updated_at"`
	Values    []OfferValue `json:"values,omitempty" gorm:"foreignKey:OfferID;references:ID;constraint:OnDelete:CASCADE"`
}

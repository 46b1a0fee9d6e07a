package models

import "github.com/google/uuid"

// Column represents a user-defined field shown for every offer
type Column struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	FieldID string    `json:"fieldId" db:"field_id" gorm:"column:field_id;type:text;not null;uniqueIndex:idx_column_field_id"`
	Label   string    `json:"label" db:"label" gorm:"column:label;type:text;not null"`
	Icon    string    `json:"icon" db:"icon" gorm:"column:icon;type:text"`
	Order   int       `json:"order" db:"order" gorm:"column:order;not null;default:0"`
}

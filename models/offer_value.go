package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OfferValue is the free-text cell stored for one offer under one column's fieldId.
// FieldID carries no schema-level foreign key to Column; column deletion removes
// matching values operationally (see database.ColumnRepo.DeleteCascade).
type OfferValue struct {
	ID      uuid.UUID      `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	OfferID uuid.UUID      `json:"offerId" db:"offer_id" gorm:"column:offer_id;type:uuid;not null;index:idx_offer_value_offer_id;uniqueIndex:idx_offer_value_unique;constraint:OnDelete:CASCADE"`
	FieldID string         `json:"fieldId" db:"field_id" gorm:"column:field_id;type:text;not null;uniqueIndex:idx_offer_value_unique"`
	Value   string         `json:"value" db:"value" gorm:"column:value;type:text;not null"`
	Meta    datatypes.JSON `json:"meta,omitempty" db:"meta" gorm:"column:meta"`
}

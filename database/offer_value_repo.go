package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offerdeck/offerdeck-backend/models"
)

type OfferValueRepo struct {
	db *gorm.DB
}

func NewOfferValueRepo(db *gorm.DB) *OfferValueRepo {
	return &OfferValueRepo{db}
}

// FindByOfferID returns all values stored for one offer
func (r *OfferValueRepo) FindByOfferID(offerID uuid.UUID) ([]*models.OfferValue, error) {
	var values []*models.OfferValue
	err := r.db.Where("offer_id = ?", offerID).Find(&values).Error
	return values, err
}

// Replace swaps the full value set of an offer for the given one. The old rows
// are deleted and the new ones created inside a single transaction, so a
// failure leaves the previous value set intact.
func (r *OfferValueRepo) Replace(offerID uuid.UUID, values []models.OfferValue) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", offerID).Delete(&models.OfferValue{}).Error; err != nil {
			return err
		}

		for i := range values {
			values[i].OfferID = offerID
			if values[i].ID == uuid.Nil {
				values[i].ID = uuid.New()
			}
		}

		if len(values) == 0 {
			return nil
		}
		return tx.Create(&values).Error
	})
}

package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/offerdeck/offerdeck-backend/models"
)

type OfferRepo struct {
	db *gorm.DB
}

func NewOfferRepo(db *gorm.DB) *OfferRepo {
	return &OfferRepo{db}
}

// FindAll returns all offers with their values, newest first
func (r *OfferRepo) FindAll() ([]*models.Offer, error) {
	var offers []*models.Offer
	err := r.db.Preload("Values").Order("created_at desc").Find(&offers).Error
	return offers, err
}

// FindByID returns an offer with its values, or nil if none exists
func (r *OfferRepo) FindByID(id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.Preload("Values").First(&offer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// Add inserts a new offer into the database; attached values are created with it
func (r *OfferRepo) Add(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

// Touch bumps the offer's updated_at timestamp
func (r *OfferRepo) Touch(id uuid.UUID) error {
	return r.db.Model(&models.Offer{}).Where("id = ?", id).Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

// Delete removes an offer and its values in one transaction
func (r *OfferRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("offer_id = ?", id).Delete(&models.OfferValue{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Offer{}, id).Error
	})
}

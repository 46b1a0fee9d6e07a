package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/offerdeck/offerdeck-backend/models"
)

type ColumnRepo struct {
	db *gorm.DB
}

func NewColumnRepo(db *gorm.DB) *ColumnRepo {
	return &ColumnRepo{db}
}

// FindAll returns all columns ordered by their display position
func (r *ColumnRepo) FindAll() ([]*models.Column, error) {
	var columns []*models.Column
	err := r.db.Order("\"order\" asc").Find(&columns).Error
	return columns, err
}

// FindByFieldID returns the column with the given fieldId, or nil if none exists
func (r *ColumnRepo) FindByFieldID(fieldID string) (*models.Column, error) {
	var column models.Column
	err := r.db.Where("field_id = ?", fieldID).First(&column).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// MaxOrder returns the highest display position currently in use, or -1 for an empty table
func (r *ColumnRepo) MaxOrder() (int, error) {
	var max int
	err := r.db.Model(&models.Column{}).Select("COALESCE(MAX(\"order\"), -1)").Scan(&max).Error
	return max, err
}

// Add inserts a new column into the database
func (r *ColumnRepo) Add(column *models.Column) error {
	return r.db.Create(column).Error
}

// Update updates an existing column in the database
func (r *ColumnRepo) Update(column *models.Column) error {
	return r.db.Save(column).Error
}

// DeleteCascade removes a column and every offer value stored under its fieldId.
// offer_values has no foreign key to columns, so both deletes run in one
// transaction to keep the cascade atomic. Returns the number of values removed.
func (r *ColumnRepo) DeleteCascade(fieldID string) (int64, error) {
	var removed int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("field_id = ?", fieldID).Delete(&models.OfferValue{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		return tx.Where("field_id = ?", fieldID).Delete(&models.Column{}).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

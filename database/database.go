package database

import (
	"gorm.io/gorm"
)

type Database struct {
	columnRepo     *ColumnRepo
	offerRepo      *OfferRepo
	offerValueRepo *OfferValueRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		columnRepo:     NewColumnRepo(db),
		offerRepo:      NewOfferRepo(db),
		offerValueRepo: NewOfferValueRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ColumnRepo() *ColumnRepo {
	return d.columnRepo
}

func (d Database) OfferRepo() *OfferRepo {
	return d.offerRepo
}

func (d Database) OfferValueRepo() *OfferValueRepo {
	return d.offerValueRepo
}

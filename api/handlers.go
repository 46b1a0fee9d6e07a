package api

import (
	"github.com/offerdeck/offerdeck-backend/config"
	"github.com/offerdeck/offerdeck-backend/database"
	"github.com/offerdeck/offerdeck-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, exchangeRates *services.ExchangeRateService, c map[string]string) *routeHandlers {
	homeCurrency := config.GetString(c, "HOME_CURRENCY", "EUR")

	return &routeHandlers{
		columnHandler: newColumnHandler(database.ColumnRepo()),
		offerHandler:  newOfferHandler(database.OfferRepo(), database.OfferValueRepo(), database.ColumnRepo(), exchangeRates, homeCurrency),
	}
}

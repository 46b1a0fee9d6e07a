package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/offerdeck/offerdeck-backend/database"
	"github.com/offerdeck/offerdeck-backend/display"
	"github.com/offerdeck/offerdeck-backend/errs"
	"github.com/offerdeck/offerdeck-backend/models"
	"github.com/offerdeck/offerdeck-backend/services"
)

type offerHandler struct {
	responder      Responder
	logger         zerolog.Logger
	offerRepo      *database.OfferRepo
	offerValueRepo *database.OfferValueRepo
	columnRepo     *database.ColumnRepo
	exchangeRates  *services.ExchangeRateService
	homeCurrency   string
}

func newOfferHandler(offerRepo *database.OfferRepo, offerValueRepo *database.OfferValueRepo, columnRepo *database.ColumnRepo, exchangeRates *services.ExchangeRateService, homeCurrency string) offerHandler {
	logger := log.With().Str("handlerName", "offerHandler").Logger()

	return offerHandler{
		responder:      NewResponder(logger),
		logger:         logger,
		offerRepo:      offerRepo,
		offerValueRepo: offerValueRepo,
		columnRepo:     columnRepo,
		exchangeRates:  exchangeRates,
		homeCurrency:   homeCurrency,
	}
}

// DecoratedValue is a stored cell together with its render hint
type DecoratedValue struct {
	models.OfferValue
	Display display.Cell `json:"display"`
}

// OfferWithValues represents an offer with its decorated values
type OfferWithValues struct {
	Offer  models.Offer     `json:"offer"`
	Values []DecoratedValue `json:"values"`
}

// OfferCollectionWithValues represents multiple offers with their decorated values
type OfferCollectionWithValues struct {
	Offers []OfferWithValues `json:"offers"`
	Total  int               `json:"total,omitempty"`
}

// getAllOffers retrieves all offers with their decorated values
// @Summary Get all offers
// @Description Retrieves all offers with their values, each decorated with a render hint
// @Tags Offers
// @Accept json
// @Produce json
// @Success 200 {object} OfferCollectionWithValues "List of offers with values"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching offers"
// @Router /offers [get]
func (h offerHandler) getAllOffers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offers, err := h.offerRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find offers", "offers", err))
			return
		}

		kinds, err := h.fieldKinds()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find columns", "columns", err))
			return
		}

		response := OfferCollectionWithValues{Total: len(offers)}
		for _, offer := range offers {
			response.Offers = append(response.Offers, h.decorate(*offer, kinds))
		}

		h.responder.WriteJSON(w, response)
	}
}

// getOffer retrieves a specific offer by ID with its decorated values
// @Summary Get offer
// @Description Retrieves one offer with its values, each decorated with a render hint
// @Tags Offers
// @Accept json
// @Produce json
// @Param offerID path string true "Offer ID" format(uuid)
// @Success 200 {object} OfferWithValues "Offer details with values"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid offerID"
// @Failure 404 {object} ErrorResponse "Not Found - Offer not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching offer"
// @Router /offers/{offerID} [get]
func (h offerHandler) getOffer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, apiErr := parseOfferID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		offer, err := h.offerRepo.FindByID(offerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find offer", "offer", err))
			return
		}
		if offer == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("offer not found"))
			return
		}

		kinds, err := h.fieldKinds()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find columns", "columns", err))
			return
		}

		h.responder.WriteJSON(w, h.decorate(*offer, kinds))
	}
}

// createOffer creates a new offer with its initial value set
// @Summary Create offer
// @Description Creates a new offer; values for unknown fieldIds are dropped
// @Tags Offers
// @Accept json
// @Produce json
// @Param offer body models.Offer true "Offer data"
// @Success 201 {object} OfferWithValues "Created offer with values"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid offer data"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating offer"
// @Router /offers [post]
func (h offerHandler) createOffer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var offer models.Offer
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&offer); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode offer request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		kinds, err := h.fieldKinds()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find columns", "columns", err))
			return
		}

		if offer.ID == uuid.Nil {
			offer.ID = uuid.New()
		}
		offer.Values = h.prepareValues(offer.Values, kinds)

		if err := h.offerRepo.Add(&offer); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create offer", "offer", err))
			return
		}

		// Reload offer to get values as stored
		createdOffer, err := h.offerRepo.FindByID(offer.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created offer", "offer", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, h.decorate(*createdOffer, kinds))
	}
}

// updateOffer replaces the full value set of an existing offer
// @Summary Update offer
// @Description Replaces the offer's value set atomically; values for unknown fieldIds are dropped
// @Tags Offers
// @Accept json
// @Produce json
// @Param offerID path string true "Offer ID" format(uuid)
// @Param offer body models.Offer true "Updated offer data"
// @Success 200 {object} OfferWithValues "Updated offer with values"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid offer data"
// @Failure 404 {object} ErrorResponse "Not Found - Offer not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating offer"
// @Router /offers/{offerID} [put]
func (h offerHandler) updateOffer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, apiErr := parseOfferID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		// Verify offer exists
		existingOffer, err := h.offerRepo.FindByID(offerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find offer", "offer", err))
			return
		}
		if existingOffer == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("offer not found"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var offer models.Offer
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&offer); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode offer request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		kinds, err := h.fieldKinds()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find columns", "columns", err))
			return
		}

		values := h.prepareValues(offer.Values, kinds)

		if err := h.offerValueRepo.Replace(offerID, values); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("replace offer values", "offer_values", err))
			return
		}

		if err := h.offerRepo.Touch(offerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update offer", "offer", err))
			return
		}

		// Reload offer to get the stored value set
		updatedOffer, err := h.offerRepo.FindByID(offerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated offer", "offer", err))
			return
		}

		h.responder.WriteJSON(w, h.decorate(*updatedOffer, kinds))
	}
}

// deleteOffer deletes an offer by ID
// @Summary Delete offer
// @Description Deletes an offer and its values from the database
// @Tags Offers
// @Accept json
// @Produce json
// @Param offerID path string true "Offer ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid offerID"
// @Failure 404 {object} ErrorResponse "Not Found - Offer not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting offer"
// @Router /offers/{offerID} [delete]
func (h offerHandler) deleteOffer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, apiErr := parseOfferID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existingOffer, err := h.offerRepo.FindByID(offerID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find offer", "offer", err))
			return
		}
		if existingOffer == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("offer not found"))
			return
		}

		if err := h.offerRepo.Delete(offerID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete offer", "offer", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "offer deleted successfully",
		})
	}
}

func parseOfferID(r *http.Request) (uuid.UUID, *errs.ApiErr) {
	offerIDStr := chi.URLParam(r, "offerID")
	if offerIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing offerID")
	}

	offerID, err := uuid.Parse(offerIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid offerID")
	}
	return offerID, nil
}

// fieldKinds maps every known fieldId to its detected render kind
func (h offerHandler) fieldKinds() (map[string]display.Kind, error) {
	columns, err := h.columnRepo.FindAll()
	if err != nil {
		return nil, err
	}

	kinds := make(map[string]display.Kind, len(columns))
	for _, column := range columns {
		kinds[column.FieldID] = display.DetectKind(column.FieldID, column.Label)
	}
	return kinds, nil
}

// prepareValues drops values for unknown fieldIds and refreshes each kept
// value's meta snapshot from the current parse of its text.
func (h offerHandler) prepareValues(values []models.OfferValue, kinds map[string]display.Kind) []models.OfferValue {
	prepared := make([]models.OfferValue, 0, len(values))
	for _, value := range values {
		kind, known := kinds[value.FieldID]
		if !known {
			h.logger.Warn().Str("fieldId", value.FieldID).Msg("Dropping value for unknown fieldId")
			continue
		}

		if value.ID == uuid.Nil {
			value.ID = uuid.New()
		}

		cell := display.Render(kind, value.Value)
		if snapshot, err := json.Marshal(cell); err == nil {
			value.Meta = datatypes.JSON(snapshot)
		}

		prepared = append(prepared, value)
	}
	return prepared
}

// decorate attaches render hints to every value of an offer
func (h offerHandler) decorate(offer models.Offer, kinds map[string]display.Kind) OfferWithValues {
	decorated := OfferWithValues{Offer: offer}
	decorated.Offer.Values = nil

	for _, value := range offer.Values {
		cell := display.Render(kinds[value.FieldID], value.Value)

		// Annotate price cells with the total in the home currency
		if cell.Price != nil && h.exchangeRates != nil && cell.Price.Currency != h.homeCurrency {
			rate, err := h.exchangeRates.Rate(cell.Price.Currency, h.homeCurrency)
			if err != nil {
				h.logger.Debug().Err(err).Str("currency", cell.Price.Currency).Msg("Skipping currency conversion")
			} else {
				cell.Price.Convert(rate, h.homeCurrency)
			}
		}

		decorated.Values = append(decorated.Values, DecoratedValue{
			OfferValue: value,
			Display:    cell,
		})
	}

	return decorated
}

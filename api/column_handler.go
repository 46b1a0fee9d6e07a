package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/offerdeck/offerdeck-backend/database"
	"github.com/offerdeck/offerdeck-backend/errs"
	"github.com/offerdeck/offerdeck-backend/models"
)

type columnHandler struct {
	responder  Responder
	logger     zerolog.Logger
	columnRepo *database.ColumnRepo
}

func newColumnHandler(columnRepo *database.ColumnRepo) columnHandler {
	logger := log.With().Str("handlerName", "columnHandler").Logger()

	return columnHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		columnRepo: columnRepo,
	}
}

// ColumnCollection represents the full set of columns in display order
type ColumnCollection struct {
	Columns []models.Column `json:"columns"`
	Total   int             `json:"total,omitempty"`
}

// getAllColumns retrieves all columns in display order
// @Summary Get all columns
// @Description Retrieves all columns from the database ordered by display position
// @Tags Columns
// @Accept json
// @Produce json
// @Success 200 {object} ColumnCollection "List of columns"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching columns"
// @Router /columns [get]
func (h columnHandler) getAllColumns() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		columns, err := h.columnRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find columns", "columns", err))
			return
		}

		response := ColumnCollection{Total: len(columns)}
		for _, column := range columns {
			response.Columns = append(response.Columns, *column)
		}

		h.responder.WriteJSON(w, response)
	}
}

// createColumn creates a new column
// @Summary Create column
// @Description Creates a new column; fieldId defaults to a slug of the label, order to the end of the board
// @Tags Columns
// @Accept json
// @Produce json
// @Param column body models.Column true "Column data"
// @Success 201 {object} models.Column "Created column"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid column data"
// @Failure 409 {object} ErrorResponse "Conflict - fieldId already exists"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error creating column"
// @Router /columns [post]
func (h columnHandler) createColumn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var column models.Column
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&column); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode column request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if column.Label == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("label"))
			return
		}

		if column.FieldID == "" {
			column.FieldID = slugify(column.Label)
		}
		if column.FieldID == "" {
			h.responder.WriteError(w, errs.NewInvalidFieldError("fieldId", "label produces an empty slug"))
			return
		}

		existing, err := h.columnRepo.FindByFieldID(column.FieldID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find column", "column", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewAlreadyExists("column"))
			return
		}

		if column.ID == uuid.Nil {
			column.ID = uuid.New()
		}

		// New columns go to the end of the board unless a position was sent
		if column.Order == 0 {
			maxOrder, err := h.columnRepo.MaxOrder()
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find max column order", "columns", err))
				return
			}
			column.Order = maxOrder + 1
		}

		if err := h.columnRepo.Add(&column); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create column", "column", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, column)
	}
}

// updateColumn updates a column's label, icon or display position
// @Summary Update column
// @Description Updates an existing column; the fieldId itself is immutable
// @Tags Columns
// @Accept json
// @Produce json
// @Param fieldID path string true "Column fieldId"
// @Param column body models.Column true "Updated column data"
// @Success 200 {object} models.Column "Updated column"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid column data"
// @Failure 404 {object} ErrorResponse "Not Found - Column not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error updating column"
// @Router /columns/{fieldID} [put]
func (h columnHandler) updateColumn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldID := chi.URLParam(r, "fieldID")
		if fieldID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing fieldID"))
			return
		}

		existing, err := h.columnRepo.FindByFieldID(fieldID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find column", "column", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("column not found"))
			return
		}

		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read request body")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
			return
		}

		var column models.Column
		if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(&column); err != nil {
			h.logger.Error().Err(err).Str("body", string(bodyBytes)).Msg("Failed to decode column request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if column.Label == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("label"))
			return
		}

		// Identity stays; only presentation fields change
		column.ID = existing.ID
		column.FieldID = existing.FieldID

		if err := h.columnRepo.Update(&column); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update column", "column", err))
			return
		}

		h.responder.WriteJSON(w, column)
	}
}

// deleteColumn deletes a column by fieldId and cascades its offer values
// @Summary Delete column
// @Description Deletes a column and all offer values stored under its fieldId
// @Tags Columns
// @Accept json
// @Produce json
// @Param fieldId query string true "Column fieldId"
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing fieldId"
// @Failure 404 {object} ErrorResponse "Not Found - Column not found"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error deleting column"
// @Router /columns [delete]
func (h columnHandler) deleteColumn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fieldID := r.URL.Query().Get("fieldId")
		if fieldID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing fieldId"))
			return
		}

		existing, err := h.columnRepo.FindByFieldID(fieldID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find column", "column", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("column not found"))
			return
		}

		removedValues, err := h.columnRepo.DeleteCascade(fieldID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete column", "column", err))
			return
		}

		h.logger.Info().
			Str("fieldId", fieldID).
			Int64("removedValues", removedValues).
			Msg("Deleted column with cascading offer values")

		h.responder.WriteJSON(w, map[string]any{
			"status":        "success",
			"message":       "column deleted successfully",
			"removedValues": removedValues,
		})
	}
}

var slugInvalidRe = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a fieldId from a human label, e.g. "Hotel Rating" -> "hotel-rating"
func slugify(label string) string {
	slug := strings.ToLower(label)
	slug = slugInvalidRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

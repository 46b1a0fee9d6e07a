package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/offerdeck/offerdeck-backend/database"
	"github.com/offerdeck/offerdeck-backend/display"
	"github.com/offerdeck/offerdeck-backend/models"
)

// Local table definitions for sqlite; the production models carry
// Postgres-only column defaults that sqlite cannot migrate.
type testColumn struct {
	ID      uuid.UUID `gorm:"type:text;primaryKey"`
	FieldID string    `gorm:"column:field_id;uniqueIndex"`
	Label   string    `gorm:"column:label"`
	Icon    string    `gorm:"column:icon"`
	Order   int       `gorm:"column:order"`
}

func (testColumn) TableName() string { return "columns" }

type testOffer struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (testOffer) TableName() string { return "offers" }

type testOfferValue struct {
	ID      uuid.UUID `gorm:"type:text;primaryKey"`
	OfferID uuid.UUID `gorm:"column:offer_id;uniqueIndex:idx_offer_value_unique"`
	FieldID string    `gorm:"column:field_id;uniqueIndex:idx_offer_value_unique"`
	Value   string    `gorm:"column:value"`
	Meta    string    `gorm:"column:meta"`
}

func (testOfferValue) TableName() string { return "offer_values" }

func newTestRouter(t *testing.T, conf map[string]string) http.Handler {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&testColumn{}, &testOffer{}, &testOfferValue{}))

	if conf == nil {
		conf = map[string]string{}
	}
	return newRouter(database.New(db), nil, withConfig(conf), withStartupTime(time.Now()))
}

func doRequest(t *testing.T, router http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["uptime"])
}

func TestColumnEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	t.Run("create without label is rejected", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"icon":"money"}`, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create derives fieldId and order", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Hotel Rating"}`, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		column := decodeBody[models.Column](t, rec)
		assert.Equal(t, "hotel-rating", column.FieldID)
		assert.Equal(t, 0, column.Order)
		assert.NotEqual(t, uuid.Nil, column.ID)
	})

	t.Run("create with explicit fieldId appends to the board", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Preis p.P.","fieldId":"price","icon":"money"}`, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		column := decodeBody[models.Column](t, rec)
		assert.Equal(t, "price", column.FieldID)
		assert.Equal(t, 1, column.Order)
	})

	t.Run("duplicate fieldId conflicts", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Preis 2","fieldId":"price"}`, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("list returns columns in display order", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/columns", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		collection := decodeBody[ColumnCollection](t, rec)
		require.Len(t, collection.Columns, 2)
		assert.Equal(t, "hotel-rating", collection.Columns[0].FieldID)
		assert.Equal(t, "price", collection.Columns[1].FieldID)
		assert.Equal(t, 2, collection.Total)
	})

	t.Run("update keeps the fieldId", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/columns/price", `{"label":"Preis gesamt","fieldId":"renamed","order":1}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		column := decodeBody[models.Column](t, rec)
		assert.Equal(t, "price", column.FieldID)
		assert.Equal(t, "Preis gesamt", column.Label)
	})

	t.Run("update of missing column is not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/columns/missing", `{"label":"x"}`, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete requires the fieldId query param", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/columns", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete of missing column is not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/columns?fieldId=missing", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete removes the column", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/columns?fieldId=hotel-rating", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		list := doRequest(t, router, http.MethodGet, "/api/columns", "", "")
		collection := decodeBody[ColumnCollection](t, list)
		require.Len(t, collection.Columns, 1)
		assert.Equal(t, "price", collection.Columns[0].FieldID)
	})
}

func TestOfferEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, body := range []string{
		`{"label":"Preis","fieldId":"price"}`,
		`{"label":"Flug","fieldId":"flight"}`,
	} {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", body, "")
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	var offerID uuid.UUID

	t.Run("create decorates values and drops unknown fieldIds", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/offers",
			`{"values":[{"fieldId":"price","value":"1499€"},{"fieldId":"bogus","value":"dropped"}]}`, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		offer := decodeBody[OfferWithValues](t, rec)
		offerID = offer.Offer.ID
		require.NotEqual(t, uuid.Nil, offerID)

		require.Len(t, offer.Values, 1)
		value := offer.Values[0]
		assert.Equal(t, "price", value.FieldID)
		assert.Equal(t, "1499€", value.Value)
		assert.NotEmpty(t, value.Meta)

		assert.Equal(t, display.KindPrice, value.Display.Kind)
		require.NotNil(t, value.Display.Price)
		assert.Equal(t, 1499.0, value.Display.Price.Total)
		assert.Equal(t, "EUR", value.Display.Price.Currency)
		assert.Equal(t, "1.499,00 €", value.Display.Formatted)
	})

	t.Run("list includes the offer", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/offers", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		collection := decodeBody[OfferCollectionWithValues](t, rec)
		require.Len(t, collection.Offers, 1)
		assert.Equal(t, offerID, collection.Offers[0].Offer.ID)
	})

	t.Run("get by id", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/offers/"+offerID.String(), "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		offer := decodeBody[OfferWithValues](t, rec)
		assert.Equal(t, offerID, offer.Offer.ID)
	})

	t.Run("get with malformed id is a bad request", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/offers/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get of missing offer is not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/offers/"+uuid.NewString(), "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("update replaces the full value set", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/offers/"+offerID.String(),
			`{"values":[{"fieldId":"flight","value":"VIE → BKK, 1 Stopp"}]}`, "")
		require.Equal(t, http.StatusOK, rec.Code)

		offer := decodeBody[OfferWithValues](t, rec)
		require.Len(t, offer.Values, 1)
		value := offer.Values[0]
		assert.Equal(t, "flight", value.FieldID)
		assert.Equal(t, display.KindFlight, value.Display.Kind)
		require.NotNil(t, value.Display.Flight)
		require.Len(t, value.Display.Flight.Segments, 1)
		assert.Equal(t, "VIE", value.Display.Flight.Segments[0].From)
		assert.Equal(t, 1, value.Display.Flight.Stops)
	})

	t.Run("update of missing offer is not found", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPut, "/api/offers/"+uuid.NewString(), `{"values":[]}`, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("column delete cascades into offer values", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/columns?fieldId=flight", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		result := decodeBody[map[string]any](t, rec)
		assert.Equal(t, float64(1), result["removedValues"])

		offerRec := doRequest(t, router, http.MethodGet, "/api/offers/"+offerID.String(), "", "")
		offer := decodeBody[OfferWithValues](t, offerRec)
		assert.Empty(t, offer.Values)
	})

	t.Run("delete removes the offer", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodDelete, "/api/offers/"+offerID.String(), "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(t, router, http.MethodGet, "/api/offers/"+offerID.String(), "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUnparsableValueFallsBackToText(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Preis","fieldId":"price"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/offers",
		`{"values":[{"fieldId":"price","value":"noch unbekannt"}]}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	offer := decodeBody[OfferWithValues](t, rec)
	require.Len(t, offer.Values, 1)
	assert.Equal(t, display.KindText, offer.Values[0].Display.Kind)
	assert.Equal(t, "noch unbekannt", offer.Values[0].Display.Raw)
	assert.Nil(t, offer.Values[0].Display.Price)
}

func TestBackendPasswordProtectsMutations(t *testing.T) {
	router := newTestRouter(t, map[string]string{"BACKEND_PASSWORD": "secret"})

	t.Run("reads stay open", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodGet, "/api/columns", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("mutation without token is unauthorized", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Preis"}`, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("mutation with wrong token is unauthorized", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Preis"}`, "wrong")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("mutation with the right token succeeds", func(t *testing.T) {
		rec := doRequest(t, router, http.MethodPost, "/api/columns", `{"label":"Preis"}`, "secret")
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hotel Rating":   "hotel-rating",
		"Preis p.P.":     "preis-p-p",
		"  Flug  ":       "flug",
		"Ça va!":         "a-va",
		"%%%":            "",
		"already-a-slug": "already-a-slug",
	}

	for label, expected := range cases {
		assert.Equal(t, expected, slugify(label), fmt.Sprintf("label %q", label))
	}
}

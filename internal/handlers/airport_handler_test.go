package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/middleware"
	"github.com/mkovalchuk/airport-api/internal/models"
)

func newAirportRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.PUT("/v1/airports/:id", UpdateAirport)
	r.PATCH("/v1/airports/:id", UpdateAirport)
	return r
}

func expectAirportByID(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT (.+) FROM "airports" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "country", "iata_code"}).
			AddRow(1, "Boryspil", "Kyiv", "Ukraine", "KBP"))
}

// A PATCH body naming only some fields keeps the stored values for the rest.
func TestPatchAirportPartialBody(t *testing.T) {
	db, mock := newMockDB(t)

	expectAirportByID(mock)
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "airports" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	router := newAirportRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/v1/airports/1", strings.NewReader(`{"name":"Boryspil International"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var airport models.Airport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &airport))
	assert.Equal(t, "Boryspil International", airport.Name)
	assert.Equal(t, "Kyiv", airport.City)
	assert.Equal(t, "Ukraine", airport.Country)
	assert.Equal(t, "KBP", airport.IATACode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// PUT stays a full replace, so the same partial body is rejected.
func TestPutAirportRequiresAllFields(t *testing.T) {
	db, mock := newMockDB(t)

	expectAirportByID(mock)

	router := newAirportRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/v1/airports/1", strings.NewReader(`{"name":"Boryspil International"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

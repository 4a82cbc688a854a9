package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/middleware"
)

func newFlightRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.GET("/v1/flights", ListFlights)
	return r
}

// Capacity 210 with 5 sold tickets leaves 205 seats; the projection comes
// back from the flights query itself.
func TestListFlightsTicketsAvailable(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	departure := time.Now().Add(24 * time.Hour)
	arrival := departure.Add(2 * time.Hour)

	mock.ExpectQuery(`(?i)select count(.+) from "flights"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT DISTINCT flights\.id(.+) FROM "flights"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tickets_available"}).AddRow(1, 205))
	mock.ExpectQuery(`SELECT (.+) FROM "flights" WHERE id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "airplane_id", "departure_time", "arrival_time"}).
			AddRow(1, 1, 1, departure, arrival))
	mock.ExpectQuery(`SELECT (.+) FROM "routes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source_id", "destination_id"}).AddRow(1, 2, 3))
	mock.ExpectQuery(`SELECT (.+) FROM "airports"`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "country", "iata_code"}).
			AddRow(2, "Boryspil", "Kyiv", "Ukraine", "KBP"))
	mock.ExpectQuery(`SELECT (.+) FROM "airports"`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "city", "country", "iata_code"}).
			AddRow(3, "Danylo Halytskyi", "Lviv", "Ukraine", "LWO"))
	mock.ExpectQuery(`SELECT (.+) FROM "airplanes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "serial_number"}).
			AddRow(1, 1, "UR-PSA"))
	mock.ExpectQuery(`SELECT (.+) FROM "airplane_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "model", "manufacturer", "rows", "seats_in_row"}).
			AddRow(1, "737", "Boeing", 35, 6))

	router := newFlightRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/flights", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Flights []flightListItem `json:"flights"`
		Total   int64            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Flights, 1)

	flight := body.Flights[0]
	assert.Equal(t, int64(205), flight.TicketsAvailable)
	assert.GreaterOrEqual(t, flight.TicketsAvailable, int64(0))
	assert.Equal(t, "Kyiv (KBP) -> Lviv (LWO)", flight.Route)
	assert.Equal(t, "Boeing 737 (UR-PSA)", flight.Airplane)
	assert.Equal(t, int64(1), body.Total)
}

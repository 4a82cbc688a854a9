package handlers

import (
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/middleware"
	"github.com/mkovalchuk/airport-api/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func newOrderRouter(db *gorm.DB, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.POST("/v1/orders", CreateOrder)
	r.GET("/v1/orders/:id", GetOrder)
	return r
}

func testFlight(id uint, rows, seatsInRow int) *models.Flight {
	return &models.Flight{
		ID: id,
		Airplane: &models.Airplane{
			Type: &models.AirplaneType{Rows: rows, SeatsInRow: seatsInRow},
		},
	}
}

func TestValidateTicketSpecsValid(t *testing.T) {
	flights := map[uint]*models.Flight{1: testFlight(1, 35, 6)}

	specs := []TicketSpec{
		{FlightID: 1, Row: 1, Seat: 1},
		{FlightID: 1, Row: 35, Seat: 6},
	}

	assert.Empty(t, validateTicketSpecs(specs, flights))
}

func TestValidateTicketSpecsOutOfRange(t *testing.T) {
	flights := map[uint]*models.Flight{1: testFlight(1, 35, 6)}

	errs := validateTicketSpecs([]TicketSpec{{FlightID: 1, Row: 36, Seat: 1}}, flights)
	assert.Contains(t, errs, "tickets[0].row")

	errs = validateTicketSpecs([]TicketSpec{{FlightID: 1, Row: 1, Seat: 7}}, flights)
	assert.Contains(t, errs, "tickets[0].seat")

	// One bad spec poisons the whole order, valid specs included.
	errs = validateTicketSpecs([]TicketSpec{
		{FlightID: 1, Row: 3, Seat: 2},
		{FlightID: 1, Row: 0, Seat: 2},
	}, flights)
	assert.NotContains(t, errs, "tickets[0].row")
	assert.Contains(t, errs, "tickets[1].row")
}

func TestValidateTicketSpecsDuplicateSeatInOrder(t *testing.T) {
	flights := map[uint]*models.Flight{1: testFlight(1, 35, 6)}

	errs := validateTicketSpecs([]TicketSpec{
		{FlightID: 1, Row: 3, Seat: 2},
		{FlightID: 1, Row: 3, Seat: 2},
	}, flights)

	assert.Contains(t, errs, "tickets[1].seat")
}

func TestValidateTicketSpecsSameSeatDifferentFlights(t *testing.T) {
	flights := map[uint]*models.Flight{
		1: testFlight(1, 35, 6),
		2: testFlight(2, 35, 6),
	}

	errs := validateTicketSpecs([]TicketSpec{
		{FlightID: 1, Row: 3, Seat: 2},
		{FlightID: 2, Row: 3, Seat: 2},
	}, flights)

	assert.Empty(t, errs)
}

func TestValidateTicketSpecsUnknownFlight(t *testing.T) {
	errs := validateTicketSpecs([]TicketSpec{{FlightID: 99, Row: 1, Seat: 1}}, map[uint]*models.Flight{})

	assert.Contains(t, errs, "tickets[0].flight")
}

func TestCreateOrderEmptyTicketListRejected(t *testing.T) {
	// Binding fails before any database work, so no expectations are needed.
	db, mock := newMockDB(t)
	router := newOrderRouter(db, uuid.New())

	for _, body := range []string{`{"tickets": []}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/v1/orders", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s", body)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

// expectBookingFlightLookup covers the flight load inside the booking
// transaction, airplane and type preloads included (capacity 35x6).
func expectBookingFlightLookup(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT (.+) FROM "flights" WHERE id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "route_id", "airplane_id"}).AddRow(1, 1, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "airplanes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_id", "serial_number"}).AddRow(1, 1, "UR-PSA"))
	mock.ExpectQuery(`SELECT (.+) FROM "airplane_types"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "model", "manufacturer", "rows", "seats_in_row"}).
			AddRow(1, "737", "Boeing", 35, 6))
}

func postOrder(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// A seat that already has a ticket fails the in-transaction count check; the
// transaction rolls back and no order row is written.
func TestCreateOrderSeatAlreadyTaken(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectBegin()
	expectBookingFlightLookup(mock)
	mock.ExpectQuery(`(?i)select count(.+) from "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	router := newOrderRouter(db, uuid.New())
	w := postOrder(t, router, `{"tickets":[{"flight":1,"row":3,"seat":2}]}`)

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "tickets[0].seat")
	assert.Contains(t, w.Body.String(), "this seat is already taken")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two requests racing for the same seat: the loser passes the count check but
// hits the unique index on (flight_id, row, seat), which must come back as a
// conflict rejection, not a 500.
func TestCreateOrderSeatRaceMapsToConflict(t *testing.T) {
	db, mock := newMockDB(t)
	mock.MatchExpectationsInOrder(false)

	mock.ExpectBegin()
	expectBookingFlightLookup(mock)
	mock.ExpectQuery(`(?i)select count(.+) from "tickets"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "orders"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_flight_row_seat"})
	mock.ExpectRollback()

	router := newOrderRouter(db, uuid.New())
	w := postOrder(t, router, `{"tickets":[{"flight":1,"row":3,"seat":2}]}`)

	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "one of the requested seats is already taken")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrderScopedToOwner(t *testing.T) {
	db, mock := newMockDB(t)

	// The lookup includes the requesting user's id, so a foreign order
	// behaves exactly like a missing one.
	mock.ExpectQuery(`SELECT (.+) FROM "orders" WHERE id = (.+) AND user_id = (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "created_at"}))

	router := newOrderRouter(db, uuid.New())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/v1/orders/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "tickets")
	assert.NoError(t, mock.ExpectationsWereMet())
}

package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFilterContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/v1/flights?"+rawQuery, nil)
	return c
}

func TestParseFlightFiltersAll(t *testing.T) {
	c := newFilterContext(t, "route=1&airplane-types=1,2&airplanes=3,4"+
		"&departure-time-from=2024-10-15T10:00:00&departure-time-to=2024-10-15T12:00:00")

	filters := parseFlightFilters(c)

	require.NotNil(t, filters.RouteID)
	assert.Equal(t, uint(1), *filters.RouteID)
	assert.Equal(t, []uint{1, 2}, filters.AirplaneTypeIDs)
	assert.Equal(t, []uint{3, 4}, filters.AirplaneIDs)

	require.NotNil(t, filters.DepartureFrom)
	assert.Equal(t, time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC), filters.DepartureFrom.UTC())
	require.NotNil(t, filters.DepartureTo)
	assert.Equal(t, time.Date(2024, 10, 15, 12, 0, 0, 0, time.UTC), filters.DepartureTo.UTC())

	assert.False(t, filters.Empty())
}

func TestParseFlightFiltersInvalidRouteIgnored(t *testing.T) {
	c := newFilterContext(t, "route=abc&departure-time-from=2024-10-15T10:00:00&departure-time-to=2024-10-15T12:00:00")

	filters := parseFlightFilters(c)

	assert.Nil(t, filters.RouteID)
	require.NotNil(t, filters.DepartureFrom)
	require.NotNil(t, filters.DepartureTo)
	assert.False(t, filters.Empty())
}

func TestParseFlightFiltersMalformedValuesSkippedIndividually(t *testing.T) {
	c := newFilterContext(t, "airplane-types=1,x&airplanes=2&arrival-time-from=not-a-time&arrival-time-to=2024-10-15T23:00:00")

	filters := parseFlightFilters(c)

	assert.Nil(t, filters.AirplaneTypeIDs)
	assert.Equal(t, []uint{2}, filters.AirplaneIDs)
	assert.Nil(t, filters.ArrivalFrom)
	require.NotNil(t, filters.ArrivalTo)
}

func TestParseFlightFiltersRFC3339Accepted(t *testing.T) {
	c := newFilterContext(t, "departure-time-from=2024-10-15T10:00:00Z")

	filters := parseFlightFilters(c)

	require.NotNil(t, filters.DepartureFrom)
	assert.Equal(t, time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC), filters.DepartureFrom.UTC())
}

func TestParseFlightFiltersDateOnlyAccepted(t *testing.T) {
	c := newFilterContext(t, "departure-time-from=2024-10-15")

	filters := parseFlightFilters(c)

	require.NotNil(t, filters.DepartureFrom)
	assert.Equal(t, time.Date(2024, 10, 15, 0, 0, 0, 0, time.UTC), filters.DepartureFrom.UTC())
}

func TestParseFlightFiltersEmpty(t *testing.T) {
	c := newFilterContext(t, "")

	filters := parseFlightFilters(c)

	assert.True(t, filters.Empty())
}

package handlers

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/helpers"
)

// flightFilters holds the recognized flight list criteria. Filtering is
// best-effort: a malformed value drops that one parameter with a logged
// warning, never the whole request.
type flightFilters struct {
	RouteID         *uint
	AirplaneTypeIDs []uint
	AirplaneIDs     []uint
	DepartureFrom   *time.Time
	DepartureTo     *time.Time
	ArrivalFrom     *time.Time
	ArrivalTo       *time.Time
}

func (f *flightFilters) Empty() bool {
	return f.RouteID == nil &&
		len(f.AirplaneTypeIDs) == 0 &&
		len(f.AirplaneIDs) == 0 &&
		f.DepartureFrom == nil && f.DepartureTo == nil &&
		f.ArrivalFrom == nil && f.ArrivalTo == nil
}

// parseISOTime accepts an RFC3339 timestamp, a naive datetime, or a bare
// date (midnight).
func parseISOTime(value string) (time.Time, error) {
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		var t time.Time
		if t, err = time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func parseFlightFilters(c *gin.Context) flightFilters {
	var filters flightFilters

	if route := c.Query("route"); route != "" {
		if id, err := helpers.StringToInt(route); err == nil && id >= 0 {
			routeID := uint(id)
			filters.RouteID = &routeID
		} else {
			log.Printf("Ignored invalid route parameter: %q", route)
		}
	}

	if airplaneTypes := c.Query("airplane-types"); airplaneTypes != "" {
		if ids, err := helpers.ParseUintList(airplaneTypes); err == nil {
			filters.AirplaneTypeIDs = ids
		} else {
			log.Printf("Ignored invalid airplane-types parameter: %q", airplaneTypes)
		}
	}

	if airplanes := c.Query("airplanes"); airplanes != "" {
		if ids, err := helpers.ParseUintList(airplanes); err == nil {
			filters.AirplaneIDs = ids
		} else {
			log.Printf("Ignored invalid airplanes parameter: %q", airplanes)
		}
	}

	timeParams := []struct {
		name   string
		target **time.Time
	}{
		{"departure-time-from", &filters.DepartureFrom},
		{"departure-time-to", &filters.DepartureTo},
		{"arrival-time-from", &filters.ArrivalFrom},
		{"arrival-time-to", &filters.ArrivalTo},
	}
	for _, param := range timeParams {
		value := c.Query(param.name)
		if value == "" {
			continue
		}
		if t, err := parseISOTime(value); err == nil {
			*param.target = &t
		} else {
			log.Printf("Ignored invalid %s parameter: %q", param.name, value)
		}
	}

	return filters
}

// Apply narrows a flight query; bounds are inclusive. The airplane-types
// filter needs the airplanes join.
func (f *flightFilters) Apply(query *gorm.DB) *gorm.DB {
	if f.RouteID != nil {
		query = query.Where("flights.route_id = ?", *f.RouteID)
	}
	if len(f.AirplaneTypeIDs) > 0 {
		query = query.
			Joins("JOIN airplanes ON airplanes.id = flights.airplane_id").
			Where("airplanes.type_id IN ?", f.AirplaneTypeIDs)
	}
	if len(f.AirplaneIDs) > 0 {
		query = query.Where("flights.airplane_id IN ?", f.AirplaneIDs)
	}
	if f.DepartureFrom != nil {
		query = query.Where("flights.departure_time >= ?", *f.DepartureFrom)
	}
	if f.DepartureTo != nil {
		query = query.Where("flights.departure_time <= ?", *f.DepartureTo)
	}
	if f.ArrivalFrom != nil {
		query = query.Where("flights.arrival_time >= ?", *f.ArrivalFrom)
	}
	if f.ArrivalTo != nil {
		query = query.Where("flights.arrival_time <= ?", *f.ArrivalTo)
	}
	return query
}

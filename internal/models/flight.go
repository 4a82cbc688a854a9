package models

import (
	"fmt"
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type Flight struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RouteID       uint         `gorm:"not null" json:"route_id"`
	Route         *Route       `gorm:"constraint:OnDelete:CASCADE" json:"route,omitempty"`
	AirplaneID    uint         `gorm:"not null" json:"airplane_id"`
	Airplane      *Airplane    `gorm:"constraint:OnDelete:CASCADE" json:"airplane,omitempty"`
	DepartureTime time.Time    `gorm:"not null" json:"departure_time"`
	ArrivalTime   time.Time    `gorm:"not null" json:"arrival_time"`
	Crew          []CrewMember `gorm:"many2many:flight_crew;" json:"crew,omitempty"`
	CreatedAt     time.Time    `json:"-"`
	UpdatedAt     time.Time    `json:"-"`
}

func (f *Flight) Display() string {
	route := fmt.Sprintf("route %d", f.RouteID)
	if f.Route != nil {
		route = f.Route.Info()
	}
	return fmt.Sprintf(
		"%s. Departure: %s. Arrival: %s",
		route,
		f.DepartureTime.Format(time.RFC3339),
		f.ArrivalTime.Format(time.RFC3339),
	)
}

func ValidateFlight(departureTime, arrivalTime time.Time) validation.Errors {
	errs := validation.Errors{}

	if !departureTime.Before(arrivalTime) {
		errs.Add("arrival_time", "departure time must be earlier than arrival time")
	}

	return errs
}

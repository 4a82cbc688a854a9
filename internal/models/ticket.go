package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

// Ticket occupies one seat on one flight. The composite unique index on
// (flight_id, row, seat) is what closes the race between two bookings
// checking the same seat at once.
type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	FlightID  uint      `gorm:"not null;uniqueIndex:idx_flight_row_seat" json:"flight_id"`
	Flight    *Flight   `json:"flight,omitempty"`
	Row       int       `gorm:"not null;uniqueIndex:idx_flight_row_seat" json:"row"`
	Seat      int       `gorm:"not null;uniqueIndex:idx_flight_row_seat" json:"seat"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// ValidateTicketSeat checks row/seat against the airplane type serving the
// ticket's flight. Bounds are inclusive on both ends.
func ValidateTicketSeat(row, seat int, airplaneType *AirplaneType) validation.Errors {
	errs := validation.Errors{}

	if row < 1 || row > airplaneType.Rows {
		errs.Add("row", fmt.Sprintf("row number must be in available range: (1, %d)", airplaneType.Rows))
	}
	if seat < 1 || seat > airplaneType.SeatsInRow {
		errs.Add("seat", fmt.Sprintf("seat number must be in available range: (1, %d)", airplaneType.SeatsInRow))
	}

	return errs
}

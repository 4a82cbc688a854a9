package models

import (
	"fmt"
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type AirplaneType struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Model        string    `gorm:"size:63;not null;uniqueIndex:idx_model_manufacturer" json:"model"`
	Manufacturer string    `gorm:"size:127;not null;uniqueIndex:idx_model_manufacturer" json:"manufacturer"`
	Rows         int       `gorm:"not null" json:"rows"`
	SeatsInRow   int       `gorm:"not null" json:"seats_in_row"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Capacity is derived, never stored.
func (t *AirplaneType) Capacity() int {
	return t.Rows * t.SeatsInRow
}

func (t *AirplaneType) String() string {
	return fmt.Sprintf("%s %s", t.Manufacturer, t.Model)
}

func ValidateAirplaneType(manufacturer string, rows, seatsInRow int) validation.Errors {
	errs := validation.Errors{}

	if !validation.IsNormalizedString(manufacturer) {
		errs.Add("manufacturer", validation.MsgNormalizedString)
	}
	if rows <= 0 {
		errs.Add("rows", "rows must be greater than zero")
	}
	if seatsInRow <= 0 {
		errs.Add("seats_in_row", "seats_in_row must be greater than zero")
	}

	return errs
}

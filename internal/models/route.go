package models

import (
	"fmt"
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type Route struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SourceID      uint      `gorm:"not null;uniqueIndex:idx_source_destination" json:"source_id"`
	Source        *Airport  `gorm:"foreignKey:SourceID;constraint:OnDelete:CASCADE" json:"source,omitempty"`
	DestinationID uint      `gorm:"not null;uniqueIndex:idx_source_destination" json:"destination_id"`
	Destination   *Airport  `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE" json:"destination,omitempty"`
	Distance      *int      `json:"distance,omitempty"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// Info is the display string used in flight listings, e.g. `Kyiv (KBP) -> Lviv (LWO)`.
func (r *Route) Info() string {
	if r.Source == nil || r.Destination == nil {
		return fmt.Sprintf("route %d", r.ID)
	}
	return fmt.Sprintf(
		"%s (%s) -> %s (%s)",
		r.Source.City, r.Source.IATACode,
		r.Destination.City, r.Destination.IATACode,
	)
}

func ValidateRoute(sourceID, destinationID uint, distance *int) validation.Errors {
	errs := validation.Errors{}

	if sourceID == destinationID {
		errs.Add("destination_id", "source and destination airports cannot be the same")
	}
	if distance != nil && *distance < 0 {
		errs.Add("distance", validation.MsgNotNegative)
	}

	return errs
}

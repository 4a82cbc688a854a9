package models

import (
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type Position struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:127;not null;uniqueIndex" json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func ValidatePosition(name string) validation.Errors {
	errs := validation.Errors{}
	if !validation.IsNormalizedString(name) {
		errs.Add("name", validation.MsgNormalizedString)
	}
	return errs
}

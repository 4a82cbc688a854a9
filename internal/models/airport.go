package models

import (
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type Airport struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:127;not null;uniqueIndex:idx_country_city_name" json:"name"`
	City      string    `gorm:"size:63;not null;uniqueIndex:idx_country_city_name" json:"city"`
	Country   string    `gorm:"size:63;not null;uniqueIndex:idx_country_city_name" json:"country"`
	IATACode  string    `gorm:"column:iata_code;size:3;not null;uniqueIndex" json:"iata_code"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func ValidateAirport(name, city, country, iataCode string) validation.Errors {
	errs := validation.Errors{}

	if !validation.IsNormalizedString(name) {
		errs.Add("name", validation.MsgNormalizedString)
	}
	if !validation.IsNormalizedString(city) {
		errs.Add("city", validation.MsgNormalizedString)
	}
	if !validation.IsNormalizedString(country) {
		errs.Add("country", validation.MsgNormalizedString)
	}
	if !validation.IsIATACode(iataCode) {
		errs.Add("iata_code", validation.MsgIATACode)
	}

	return errs
}

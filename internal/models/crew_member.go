package models

import (
	"fmt"
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

const minimumCrewAge = 18

type CrewMember struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	LicenseNumber      string    `gorm:"size:127;not null;uniqueIndex" json:"license_number"`
	FirstName          string    `gorm:"size:127;not null" json:"first_name"`
	LastName           string    `gorm:"size:127;not null" json:"last_name"`
	Gender             Gender    `gorm:"size:1;not null" json:"gender"`
	DateOfBirth        Date      `gorm:"not null" json:"date_of_birth"`
	PositionID         *uint     `json:"position_id,omitempty"`
	Position           *Position `gorm:"constraint:OnDelete:SET NULL" json:"position,omitempty"`
	HiringDate         *Date     `json:"hiring_date,omitempty"`
	PreviousExperience *int      `json:"previous_experience,omitempty"`
	CreatedAt          time.Time `json:"-"`
	UpdatedAt          time.Time `json:"-"`
}

func (c *CrewMember) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}

// TotalExperience is previous experience plus full years since hiring.
func (c *CrewMember) TotalExperience() int {
	total := 0
	if c.PreviousExperience != nil {
		total = *c.PreviousExperience
	}
	if c.HiringDate != nil {
		total += int(time.Since(c.HiringDate.Time).Hours()/24) / 365
	}
	return total
}

func ValidateCrewMember(
	firstName string,
	lastName string,
	gender Gender,
	dateOfBirth Date,
	hiringDate *Date,
	previousExperience *int,
) validation.Errors {
	errs := validation.Errors{}

	if !validation.IsNormalizedString(firstName) {
		errs.Add("first_name", validation.MsgNormalizedString)
	}
	if !validation.IsNormalizedString(lastName) {
		errs.Add("last_name", validation.MsgNormalizedString)
	}
	if gender != GenderMale && gender != GenderFemale {
		errs.Add("gender", "gender must be either M or F")
	}
	if validation.AgeInYears(dateOfBirth.Time) < minimumCrewAge {
		errs.Add("date_of_birth", fmt.Sprintf("age must be at least %d years", minimumCrewAge))
	}
	if hiringDate != nil && validation.IsFutureDate(hiringDate.Time) {
		errs.Add("hiring_date", validation.MsgNotInFuture)
	}
	if previousExperience != nil && *previousExperience < 0 {
		errs.Add("previous_experience", validation.MsgNotNegative)
	}

	return errs
}

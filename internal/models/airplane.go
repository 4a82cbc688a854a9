package models

import (
	"fmt"
	"time"

	"github.com/mkovalchuk/airport-api/internal/validation"
)

type Airplane struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	TypeID              uint          `gorm:"not null" json:"type_id"`
	Type                *AirplaneType `gorm:"foreignKey:TypeID;constraint:OnDelete:CASCADE" json:"type,omitempty"`
	Name                *string       `gorm:"size:127" json:"name,omitempty"`
	SerialNumber        string        `gorm:"size:127;not null;uniqueIndex" json:"serial_number"`
	ManufactureDate     *Date         `json:"manufacture_date,omitempty"`
	OperationStartDate  *Date         `json:"operation_start_date,omitempty"`
	LastMaintenanceDate *Date         `json:"last_maintenance_date,omitempty"`
	CreatedAt           time.Time     `json:"-"`
	UpdatedAt           time.Time     `json:"-"`
}

// Info is the display string used in flight listings, e.g.
// `Boeing 737 'Kyiv' (UR-PSA)`.
func (a *Airplane) Info() string {
	name := ""
	if a.Name != nil && *a.Name != "" {
		name = fmt.Sprintf(" '%s'", *a.Name)
	}
	typeName := ""
	if a.Type != nil {
		typeName = a.Type.String()
	}
	return fmt.Sprintf("%s%s (%s)", typeName, name, a.SerialNumber)
}

func (a *Airplane) Age() int {
	if a.ManufactureDate == nil {
		return 0
	}
	return time.Now().Year() - a.ManufactureDate.Year()
}

func ValidateAirplane(name *string, manufactureDate, operationStartDate, lastMaintenanceDate *Date) validation.Errors {
	errs := validation.Errors{}

	if name != nil && *name != "" && !validation.IsNormalizedString(*name) {
		errs.Add("name", validation.MsgNormalizedString)
	}
	if operationStartDate != nil && manufactureDate != nil &&
		operationStartDate.Before(manufactureDate.Time) {
		errs.Add("operation_start_date", "operation start date cannot be earlier than manufacture date")
	}
	if lastMaintenanceDate != nil && manufactureDate != nil &&
		lastMaintenanceDate.Before(manufactureDate.Time) {
		errs.Add("last_maintenance_date", "last maintenance date cannot be earlier than manufacture date")
	}
	if operationStartDate != nil && lastMaintenanceDate != nil &&
		operationStartDate.After(lastMaintenanceDate.Time) {
		errs.Add("operation_start_date", "operation start date cannot be later than last maintenance date")
	}

	return errs
}

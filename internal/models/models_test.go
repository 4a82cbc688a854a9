package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func datePtr(year int, month time.Month, day int) *Date {
	d := NewDate(year, month, day)
	return &d
}

func TestAirplaneTypeCapacity(t *testing.T) {
	airplaneType := AirplaneType{Rows: 35, SeatsInRow: 6}
	assert.Equal(t, 210, airplaneType.Capacity())
}

func TestValidateAirplaneType(t *testing.T) {
	errs := ValidateAirplaneType("Boeing", 35, 6)
	assert.Empty(t, errs)

	errs = ValidateAirplaneType("Boeing", 0, 6)
	assert.Contains(t, errs, "rows")

	errs = ValidateAirplaneType("Boeing", 35, -1)
	assert.Contains(t, errs, "seats_in_row")

	errs = ValidateAirplaneType("Boeing 737!", 35, 6)
	assert.Contains(t, errs, "manufacturer")
}

func TestValidateTicketSeatBounds(t *testing.T) {
	airplaneType := &AirplaneType{Rows: 35, SeatsInRow: 6}

	assert.Empty(t, ValidateTicketSeat(1, 1, airplaneType))
	assert.Empty(t, ValidateTicketSeat(35, 6, airplaneType))

	errs := ValidateTicketSeat(0, 1, airplaneType)
	assert.Contains(t, errs, "row")

	errs = ValidateTicketSeat(36, 1, airplaneType)
	assert.Contains(t, errs, "row")

	errs = ValidateTicketSeat(1, 0, airplaneType)
	assert.Contains(t, errs, "seat")

	errs = ValidateTicketSeat(1, 7, airplaneType)
	assert.Contains(t, errs, "seat")

	errs = ValidateTicketSeat(0, 7, airplaneType)
	assert.Len(t, errs, 2)
}

func TestValidateRoute(t *testing.T) {
	assert.Empty(t, ValidateRoute(1, 2, intPtr(500)))
	assert.Empty(t, ValidateRoute(1, 2, nil))

	errs := ValidateRoute(3, 3, intPtr(500))
	assert.Contains(t, errs, "destination_id")

	errs = ValidateRoute(3, 3, nil)
	assert.Contains(t, errs, "destination_id")

	errs = ValidateRoute(1, 2, intPtr(-1))
	assert.Contains(t, errs, "distance")
}

func TestValidateFlight(t *testing.T) {
	departure := time.Date(2024, 10, 15, 10, 0, 0, 0, time.UTC)

	assert.Empty(t, ValidateFlight(departure, departure.Add(2*time.Hour)))

	errs := ValidateFlight(departure, departure)
	assert.Contains(t, errs, "arrival_time")

	errs = ValidateFlight(departure, departure.Add(-time.Hour))
	assert.Contains(t, errs, "arrival_time")
}

func TestValidateAirplaneDates(t *testing.T) {
	manufacture := datePtr(2010, time.March, 1)

	errs := ValidateAirplane(nil, manufacture, datePtr(2010, time.June, 1), datePtr(2023, time.January, 10))
	assert.Empty(t, errs)

	// Operating before it was built.
	errs = ValidateAirplane(nil, manufacture, datePtr(2009, time.June, 1), nil)
	assert.Contains(t, errs, "operation_start_date")

	// Maintained before it was built.
	errs = ValidateAirplane(nil, manufacture, nil, datePtr(2009, time.June, 1))
	assert.Contains(t, errs, "last_maintenance_date")

	// Operation start after last maintenance.
	errs = ValidateAirplane(nil, nil, datePtr(2023, time.June, 1), datePtr(2023, time.January, 10))
	assert.Contains(t, errs, "operation_start_date")

	assert.Empty(t, ValidateAirplane(nil, nil, nil, nil))

	errs = ValidateAirplane(strPtr("Spirit of Kyiv!"), nil, nil, nil)
	assert.Contains(t, errs, "name")
}

func TestValidateCrewMember(t *testing.T) {
	birth := Date{Time: time.Now().AddDate(-30, 0, 0)}

	errs := ValidateCrewMember("John", "O'Brien", GenderMale, birth, nil, nil)
	assert.Empty(t, errs)

	minor := Date{Time: time.Now().AddDate(-16, 0, 0)}
	errs = ValidateCrewMember("John", "Smith", GenderMale, minor, nil, nil)
	assert.Contains(t, errs, "date_of_birth")

	future := Date{Time: time.Now().AddDate(0, 1, 0)}
	errs = ValidateCrewMember("John", "Smith", GenderMale, birth, &future, nil)
	assert.Contains(t, errs, "hiring_date")

	errs = ValidateCrewMember("John", "Smith", GenderMale, birth, nil, intPtr(-2))
	assert.Contains(t, errs, "previous_experience")

	errs = ValidateCrewMember("J0hn", "Smith", "X", birth, nil, nil)
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "gender")
}

func TestCrewMemberDerivedFields(t *testing.T) {
	hired := Date{Time: time.Now().AddDate(-5, -1, 0)}
	member := CrewMember{
		FirstName:          "Olena",
		LastName:           "Shevchenko",
		HiringDate:         &hired,
		PreviousExperience: intPtr(4),
	}

	assert.Equal(t, "Olena Shevchenko", member.FullName())
	assert.Equal(t, 9, member.TotalExperience())

	noHistory := CrewMember{FirstName: "Max", LastName: "Koval"}
	assert.Equal(t, 0, noHistory.TotalExperience())
}

func TestRouteInfo(t *testing.T) {
	route := Route{
		Source:      &Airport{City: "Kyiv", IATACode: "KBP"},
		Destination: &Airport{City: "Lviv", IATACode: "LWO"},
	}
	assert.Equal(t, "Kyiv (KBP) -> Lviv (LWO)", route.Info())
}

func TestAirplaneInfo(t *testing.T) {
	airplane := Airplane{
		Type:         &AirplaneType{Manufacturer: "Boeing", Model: "737"},
		Name:         strPtr("Mriya"),
		SerialNumber: "UR-PSA",
	}
	assert.Equal(t, "Boeing 737 'Mriya' (UR-PSA)", airplane.Info())

	unnamed := Airplane{
		Type:         &AirplaneType{Manufacturer: "Airbus", Model: "A320"},
		SerialNumber: "UR-WDC",
	}
	assert.Equal(t, "Airbus A320 (UR-WDC)", unnamed.Info())
}

func TestValidateAirport(t *testing.T) {
	assert.Empty(t, ValidateAirport("Boryspil", "Kyiv", "Ukraine", "KBP"))

	errs := ValidateAirport("Boryspil", "Kyiv", "Ukraine", "kbp")
	assert.Contains(t, errs, "iata_code")

	errs = ValidateAirport("Boryspil-", "Kyiv2", " Ukraine", "KBP")
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "city")
	assert.Contains(t, errs, "country")
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.October, 15)

	encoded, err := d.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `"2024-10-15"`, string(encoded))

	var decoded Date
	assert.NoError(t, decoded.UnmarshalJSON([]byte(`"2024-10-15"`)))
	assert.True(t, decoded.Equal(d.Time))

	assert.Error(t, decoded.UnmarshalJSON([]byte(`"15/10/2024"`)))
}

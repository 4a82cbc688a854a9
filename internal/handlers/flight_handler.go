package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/helpers"
	"github.com/mkovalchuk/airport-api/internal/middleware"
	"github.com/mkovalchuk/airport-api/internal/models"
)

type FlightRequest struct {
	RouteID       uint      `json:"route_id" binding:"required"`
	AirplaneID    uint      `json:"airplane_id" binding:"required"`
	DepartureTime time.Time `json:"departure_time" binding:"required"`
	ArrivalTime   time.Time `json:"arrival_time" binding:"required"`
	CrewIDs       []uint    `json:"crew_ids"`
}

type flightListItem struct {
	ID               uint      `json:"id"`
	Route            string    `json:"route"`
	Airplane         string    `json:"airplane"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
	TicketsAvailable int64     `json:"tickets_available"`
}

type takenPlace struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

type flightDetail struct {
	models.Flight
	TakenPlaces      []takenPlace         `json:"taken_places"`
	Crew             []crewMemberListItem `json:"crew"`
	TicketsAvailable int64                `json:"tickets_available"`
}

// ticketsAvailableExpr derives remaining seats as capacity minus booked
// tickets in one SQL expression, so both sides come from the same snapshot.
const ticketsAvailableExpr = `(SELECT airplane_types.rows * airplane_types.seats_in_row ` +
	`FROM airplanes JOIN airplane_types ON airplane_types.id = airplanes.type_id ` +
	`WHERE airplanes.id = flights.airplane_id) - ` +
	`(SELECT COUNT(*) FROM tickets WHERE tickets.flight_id = flights.id)`

func (req *FlightRequest) validate(c *gin.Context, gormDB *gorm.DB) ([]models.CrewMember, bool) {
	errs := models.ValidateFlight(req.DepartureTime, req.ArrivalTime)

	var route models.Route
	if err := gormDB.Where("id = ?", req.RouteID).First(&route).Error; err != nil {
		errs.Add("route_id", "route not found")
	}
	var airplane models.Airplane
	if err := gormDB.Where("id = ?", req.AirplaneID).First(&airplane).Error; err != nil {
		errs.Add("airplane_id", "airplane not found")
	}

	var crew []models.CrewMember
	if len(req.CrewIDs) > 0 {
		if err := gormDB.Where("id IN ?", req.CrewIDs).Find(&crew).Error; err != nil || len(crew) != len(req.CrewIDs) {
			errs.Add("crew_ids", "one or more crew members not found")
		}
	}

	if len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return nil, false
	}
	return crew, true
}

func CreateFlight(c *gin.Context) {
	var req FlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	crew, ok := req.validate(c, gormDB)
	if !ok {
		return
	}

	flight := models.Flight{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Crew:          crew,
	}

	if err := gormDB.Create(&flight).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create flight.")
		return
	}

	c.JSON(http.StatusCreated, flight)
}

func ListFlights(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)
	filters := parseFlightFilters(c)

	baseQuery := func() *gorm.DB {
		query := gormDB.Model(&models.Flight{})
		if filters.Empty() {
			// Unfiltered listing shows upcoming flights only.
			query = query.Where("flights.departure_time >= ?", time.Now())
		}
		return filters.Apply(query)
	}

	var totalCount int64
	baseQuery().Distinct("flights.id").Count(&totalCount)

	// Availability is computed inside this one statement; duplicates from the
	// airplanes join are collapsed by DISTINCT.
	var rows []struct {
		ID               uint
		TicketsAvailable int64
	}
	err := baseQuery().
		Distinct("flights.id, " + ticketsAvailableExpr + " AS tickets_available").
		Order("flights.id").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Scan(&rows).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flights.")
		return
	}

	ids := make([]uint, 0, len(rows))
	availability := make(map[uint]int64, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		availability[row.ID] = row.TicketsAvailable
	}

	var flights []models.Flight
	if len(ids) > 0 {
		err = gormDB.
			Preload("Route.Source").Preload("Route.Destination").
			Preload("Airplane.Type").
			Where("id IN ?", ids).
			Order("id").
			Find(&flights).Error
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flights.")
			return
		}
	}

	items := make([]flightListItem, 0, len(flights))
	for i := range flights {
		flight := &flights[i]
		item := flightListItem{
			ID:               flight.ID,
			DepartureTime:    flight.DepartureTime,
			ArrivalTime:      flight.ArrivalTime,
			TicketsAvailable: availability[flight.ID],
		}
		if flight.Route != nil {
			item.Route = flight.Route.Info()
		}
		if flight.Airplane != nil {
			item.Airplane = flight.Airplane.Info()
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"flights": items,
		"total":   totalCount,
		"page":    pagination.Page,
		"limit":   pagination.Limit,
	})
}

func GetFlight(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var flight models.Flight
	err := gormDB.
		Preload("Route.Source").Preload("Route.Destination").
		Preload("Airplane.Type").
		Preload("Crew.Position").
		Where("id = ?", c.Param("id")).
		First(&flight).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	var tickets []models.Ticket
	if err := gormDB.Where("flight_id = ?", flight.ID).Order(`"row", seat`).Find(&tickets).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight tickets.")
		return
	}

	taken := make([]takenPlace, 0, len(tickets))
	for _, ticket := range tickets {
		taken = append(taken, takenPlace{Row: ticket.Row, Seat: ticket.Seat})
	}

	crew := make([]crewMemberListItem, 0, len(flight.Crew))
	for i := range flight.Crew {
		member := &flight.Crew[i]
		item := crewMemberListItem{
			ID:            member.ID,
			LicenseNumber: member.LicenseNumber,
			FullName:      member.FullName(),
			Gender:        string(member.Gender),
		}
		if member.Position != nil {
			item.Position = member.Position.Name
		}
		crew = append(crew, item)
	}

	available := int64(0)
	if flight.Airplane != nil && flight.Airplane.Type != nil {
		available = int64(flight.Airplane.Type.Capacity() - len(tickets))
	}

	detail := flightDetail{
		Flight:           flight,
		TakenPlaces:      taken,
		Crew:             crew,
		TicketsAvailable: available,
	}
	detail.Flight.Crew = nil

	c.JSON(http.StatusOK, detail)
}

func UpdateFlight(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var flight models.Flight
	if err := gormDB.Preload("Crew").Where("id = ?", c.Param("id")).First(&flight).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving flight.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values,
	// the current crew included.
	var req FlightRequest
	if c.Request.Method == http.MethodPatch {
		req = FlightRequest{
			RouteID:       flight.RouteID,
			AirplaneID:    flight.AirplaneID,
			DepartureTime: flight.DepartureTime,
			ArrivalTime:   flight.ArrivalTime,
		}
		for _, member := range flight.Crew {
			req.CrewIDs = append(req.CrewIDs, member.ID)
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	crew, ok := req.validate(c, gormDB)
	if !ok {
		return
	}

	// Swapping the airplane does not revalidate tickets already sold; see
	// DESIGN.md.
	flight.Crew = nil // the association is replaced below, not saved with the row
	flight.RouteID = req.RouteID
	flight.AirplaneID = req.AirplaneID
	flight.DepartureTime = req.DepartureTime
	flight.ArrivalTime = req.ArrivalTime

	if err := gormDB.Save(&flight).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update flight.")
		return
	}

	if err := gormDB.Model(&flight).Association("Crew").Replace(crew); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error updating flight crew.")
		return
	}

	c.JSON(http.StatusOK, flight)
}

func DeleteFlight(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Flight{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete flight.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Flight not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Flight deleted successfully."})
}

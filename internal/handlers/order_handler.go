package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/helpers"
	"github.com/mkovalchuk/airport-api/internal/middleware"
	"github.com/mkovalchuk/airport-api/internal/models"
	"github.com/mkovalchuk/airport-api/internal/validation"
)

type TicketSpec struct {
	FlightID uint `json:"flight" binding:"required"`
	Row      int  `json:"row" binding:"required"`
	Seat     int  `json:"seat" binding:"required"`
}

type CreateOrderRequest struct {
	Tickets []TicketSpec `json:"tickets" binding:"required,min=1,dive"`
}

type orderTicketItem struct {
	ID     uint   `json:"id"`
	Row    int    `json:"row"`
	Seat   int    `json:"seat"`
	Flight string `json:"flight"`
}

type orderResponse struct {
	ID        uuid.UUID         `json:"id"`
	CreatedAt string            `json:"created_at"`
	Tickets   []orderTicketItem `json:"tickets"`
}

func newOrderResponse(order *models.Order) orderResponse {
	tickets := make([]orderTicketItem, 0, len(order.Tickets))
	for i := range order.Tickets {
		ticket := &order.Tickets[i]
		item := orderTicketItem{
			ID:   ticket.ID,
			Row:  ticket.Row,
			Seat: ticket.Seat,
		}
		if ticket.Flight != nil {
			item.Flight = ticket.Flight.Display()
		}
		tickets = append(tickets, item)
	}
	return orderResponse{
		ID:        order.ID,
		CreatedAt: order.CreatedAt.UTC().Format(time.RFC3339),
		Tickets:   tickets,
	}
}

// validateTicketSpecs runs the seat-bound checks for every spec against its
// flight's airplane type and rejects duplicate seats inside the same request.
// It never touches the database; missing flights must already be in the map
// as absent entries.
func validateTicketSpecs(specs []TicketSpec, flights map[uint]*models.Flight) validation.Errors {
	errs := validation.Errors{}
	seen := make(map[string]bool, len(specs))

	for i, spec := range specs {
		prefix := fmt.Sprintf("tickets[%d]", i)

		flight, ok := flights[spec.FlightID]
		if !ok || flight == nil {
			errs.Add(prefix+".flight", "flight not found")
			continue
		}
		if flight.Airplane == nil || flight.Airplane.Type == nil {
			errs.Add(prefix+".flight", "flight has no airplane assigned")
			continue
		}

		for field, message := range models.ValidateTicketSeat(spec.Row, spec.Seat, flight.Airplane.Type) {
			errs.Add(fmt.Sprintf("%s.%s", prefix, field), message)
		}

		key := fmt.Sprintf("%d:%d:%d", spec.FlightID, spec.Row, spec.Seat)
		if seen[key] {
			errs.Add(prefix+".seat", "duplicate seat in this order")
		}
		seen[key] = true
	}

	return errs
}

// CreateOrder books one order with all its tickets as a single unit. Any
// failed check aborts the whole transaction; the unique index on
// (flight_id, row, seat) settles races that slip past the explicit checks.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. An order needs at least one ticket.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var order models.Order
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		flightIDs := make([]uint, 0, len(req.Tickets))
		for _, spec := range req.Tickets {
			flightIDs = append(flightIDs, spec.FlightID)
		}

		var flights []models.Flight
		if err := tx.Preload("Airplane.Type").Where("id IN ?", flightIDs).Find(&flights).Error; err != nil {
			return err
		}
		flightsByID := make(map[uint]*models.Flight, len(flights))
		for i := range flights {
			flightsByID[flights[i].ID] = &flights[i]
		}

		errs := validateTicketSpecs(req.Tickets, flightsByID)
		if len(errs) > 0 {
			return errs
		}

		for i, spec := range req.Tickets {
			var taken int64
			err := tx.Model(&models.Ticket{}).
				Where(`flight_id = ? AND "row" = ? AND seat = ?`, spec.FlightID, spec.Row, spec.Seat).
				Count(&taken).Error
			if err != nil {
				return err
			}
			if taken > 0 {
				return validation.Errors{
					fmt.Sprintf("tickets[%d].seat", i): "this seat is already taken",
				}
			}
		}

		order = models.Order{UserID: userID.(uuid.UUID)}
		for _, spec := range req.Tickets {
			order.Tickets = append(order.Tickets, models.Ticket{
				FlightID: spec.FlightID,
				Row:      spec.Row,
				Seat:     spec.Seat,
			})
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			helpers.RespondWithValidationErrors(c, vErrs)
			return
		}
		if helpers.IsUniqueViolation(err) {
			// Lost the race for a seat between our check and the insert.
			helpers.RespondWithValidationErrors(c, validation.Errors{"tickets": "one of the requested seats is already taken"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create order.")
		return
	}

	if err := preloadOrderTickets(gormDB, &order); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving created order.")
		return
	}

	c.JSON(http.StatusCreated, newOrderResponse(&order))
}

func preloadOrderTickets(gormDB *gorm.DB, order *models.Order) error {
	return gormDB.
		Preload("Tickets.Flight.Route.Source").
		Preload("Tickets.Flight.Route.Destination").
		Where("id = ?", order.ID).
		First(order).Error
}

// ListOrders only ever shows the requesting user's orders.
func ListOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 7, 20)

	var totalCount int64
	gormDB.Model(&models.Order{}).Where("user_id = ?", userID).Count(&totalCount)

	var orders []models.Order
	err := gormDB.
		Preload("Tickets.Flight.Route.Source").
		Preload("Tickets.Flight.Route.Destination").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&orders).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving orders.")
		return
	}

	items := make([]orderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, newOrderResponse(&orders[i]))
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": items,
		"total":  totalCount,
		"page":   pagination.Page,
		"limit":  pagination.Limit,
	})
}

// GetOrder scopes the lookup to the requesting user, so another user's order
// id yields 404 rather than leaking its contents.
func GetOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var order models.Order
	err := gormDB.
		Preload("Tickets.Flight.Route.Source").
		Preload("Tickets.Flight.Route.Destination").
		Preload("Tickets.Flight.Airplane.Type").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving order.")
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(&order))
}

// DeleteOrder removes an order and, through the cascade, its tickets.
func DeleteOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ? AND user_id = ?", c.Param("id"), userID).Delete(&models.Order{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete order.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Order not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully."})
}

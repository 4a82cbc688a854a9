package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mkovalchuk/airport-api/internal/helpers"
	"github.com/mkovalchuk/airport-api/internal/middleware"
	"github.com/mkovalchuk/airport-api/internal/models"
	"github.com/mkovalchuk/airport-api/internal/validation"
)

type RouteRequest struct {
	SourceID      uint `json:"source_id" binding:"required"`
	DestinationID uint `json:"destination_id" binding:"required"`
	Distance      *int `json:"distance"`
}

func (req *RouteRequest) validate(c *gin.Context, gormDB *gorm.DB) bool {
	errs := models.ValidateRoute(req.SourceID, req.DestinationID, req.Distance)

	var airport models.Airport
	if err := gormDB.Where("id = ?", req.SourceID).First(&airport).Error; err != nil {
		errs.Add("source_id", "airport not found")
	}
	if req.DestinationID != req.SourceID {
		if err := gormDB.Where("id = ?", req.DestinationID).First(&airport).Error; err != nil {
			errs.Add("destination_id", "airport not found")
		}
	}

	if len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return false
	}
	return true
}

func CreateRoute(c *gin.Context) {
	var req RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	if !req.validate(c, gormDB) {
		return
	}

	route := models.Route{
		SourceID:      req.SourceID,
		DestinationID: req.DestinationID,
		Distance:      req.Distance,
	}

	if err := gormDB.Create(&route).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"destination_id": "route between these airports already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create route.")
		return
	}

	gormDB.Preload("Source").Preload("Destination").First(&route, route.ID)
	c.JSON(http.StatusCreated, route)
}

func ListRoutes(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)

	var totalCount int64
	gormDB.Model(&models.Route{}).Count(&totalCount)

	var routes []models.Route
	err := gormDB.Preload("Source").Preload("Destination").
		Order("source_id").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&routes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving routes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"routes": routes,
		"total":  totalCount,
		"page":   pagination.Page,
		"limit":  pagination.Limit,
	})
}

func GetRoute(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var route models.Route
	if err := gormDB.Preload("Source").Preload("Destination").Where("id = ?", c.Param("id")).First(&route).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	c.JSON(http.StatusOK, route)
}

func UpdateRoute(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var route models.Route
	if err := gormDB.Where("id = ?", c.Param("id")).First(&route).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving route.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values.
	var req RouteRequest
	if c.Request.Method == http.MethodPatch {
		req = RouteRequest{
			SourceID:      route.SourceID,
			DestinationID: route.DestinationID,
			Distance:      route.Distance,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !req.validate(c, gormDB) {
		return
	}

	route.SourceID = req.SourceID
	route.DestinationID = req.DestinationID
	route.Distance = req.Distance

	if err := gormDB.Save(&route).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"destination_id": "route between these airports already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update route.")
		return
	}

	gormDB.Preload("Source").Preload("Destination").First(&route, route.ID)
	c.JSON(http.StatusOK, route)
}

func DeleteRoute(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Route{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete route.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Route not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Route deleted successfully."})
}

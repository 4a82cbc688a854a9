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

type AirportRequest struct {
	Name     string `json:"name" binding:"required"`
	City     string `json:"city" binding:"required"`
	Country  string `json:"country" binding:"required"`
	IATACode string `json:"iata_code" binding:"required"`
}

func CreateAirport(c *gin.Context) {
	var req AirportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	if errs := models.ValidateAirport(req.Name, req.City, req.Country, req.IATACode); len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	airport := models.Airport{
		Name:     req.Name,
		City:     req.City,
		Country:  req.Country,
		IATACode: req.IATACode,
	}

	if err := gormDB.Create(&airport).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"iata_code": "airport with this IATA code or name already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airport.")
		return
	}

	c.JSON(http.StatusCreated, airport)
}

func ListAirports(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)

	var totalCount int64
	gormDB.Model(&models.Airport{}).Count(&totalCount)

	var airports []models.Airport
	err := gormDB.Order("country, city, name").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&airports).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airports.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"airports": airports,
		"total":    totalCount,
		"page":     pagination.Page,
		"limit":    pagination.Limit,
	})
}

func GetAirport(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var airport models.Airport
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airport).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	c.JSON(http.StatusOK, airport)
}

func UpdateAirport(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var airport models.Airport
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airport).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airport.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values.
	var req AirportRequest
	if c.Request.Method == http.MethodPatch {
		req = AirportRequest{
			Name:     airport.Name,
			City:     airport.City,
			Country:  airport.Country,
			IATACode: airport.IATACode,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if errs := models.ValidateAirport(req.Name, req.City, req.Country, req.IATACode); len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	airport.Name = req.Name
	airport.City = req.City
	airport.Country = req.Country
	airport.IATACode = req.IATACode

	if err := gormDB.Save(&airport).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"iata_code": "airport with this IATA code or name already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airport.")
		return
	}

	c.JSON(http.StatusOK, airport)
}

func DeleteAirport(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Airport{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airport.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airport not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airport deleted successfully."})
}

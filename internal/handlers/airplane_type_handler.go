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

type AirplaneTypeRequest struct {
	Model        string `json:"model" binding:"required"`
	Manufacturer string `json:"manufacturer" binding:"required"`
	Rows         int    `json:"rows" binding:"required"`
	SeatsInRow   int    `json:"seats_in_row" binding:"required"`
}

type airplaneTypeResponse struct {
	models.AirplaneType
	Capacity int `json:"capacity"`
}

func newAirplaneTypeResponse(t models.AirplaneType) airplaneTypeResponse {
	return airplaneTypeResponse{AirplaneType: t, Capacity: t.Capacity()}
}

func CreateAirplaneType(c *gin.Context) {
	var req AirplaneTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	if errs := models.ValidateAirplaneType(req.Manufacturer, req.Rows, req.SeatsInRow); len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	airplaneType := models.AirplaneType{
		Model:        req.Model,
		Manufacturer: req.Manufacturer,
		Rows:         req.Rows,
		SeatsInRow:   req.SeatsInRow,
	}

	if err := gormDB.Create(&airplaneType).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"model": "airplane type with this model and manufacturer already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane type.")
		return
	}

	c.JSON(http.StatusCreated, newAirplaneTypeResponse(airplaneType))
}

func ListAirplaneTypes(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)

	var totalCount int64
	gormDB.Model(&models.AirplaneType{}).Count(&totalCount)

	var airplaneTypes []models.AirplaneType
	err := gormDB.Order("manufacturer, model").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&airplaneTypes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane types.")
		return
	}

	items := make([]airplaneTypeResponse, 0, len(airplaneTypes))
	for _, airplaneType := range airplaneTypes {
		items = append(items, newAirplaneTypeResponse(airplaneType))
	}

	c.JSON(http.StatusOK, gin.H{
		"airplane_types": items,
		"total":          totalCount,
		"page":           pagination.Page,
		"limit":          pagination.Limit,
	})
}

func GetAirplaneType(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airplaneType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane type.")
		return
	}

	c.JSON(http.StatusOK, newAirplaneTypeResponse(airplaneType))
}

func UpdateAirplaneType(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airplaneType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane type.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values.
	var req AirplaneTypeRequest
	if c.Request.Method == http.MethodPatch {
		req = AirplaneTypeRequest{
			Model:        airplaneType.Model,
			Manufacturer: airplaneType.Manufacturer,
			Rows:         airplaneType.Rows,
			SeatsInRow:   airplaneType.SeatsInRow,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if errs := models.ValidateAirplaneType(req.Manufacturer, req.Rows, req.SeatsInRow); len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	airplaneType.Model = req.Model
	airplaneType.Manufacturer = req.Manufacturer
	airplaneType.Rows = req.Rows
	airplaneType.SeatsInRow = req.SeatsInRow

	if err := gormDB.Save(&airplaneType).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"model": "airplane type with this model and manufacturer already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane type.")
		return
	}

	c.JSON(http.StatusOK, newAirplaneTypeResponse(airplaneType))
}

func DeleteAirplaneType(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.AirplaneType{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airplane type.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airplane type not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane type deleted successfully."})
}

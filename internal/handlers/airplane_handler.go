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

type AirplaneRequest struct {
	TypeID              uint         `json:"type_id" binding:"required"`
	Name                *string      `json:"name"`
	SerialNumber        string       `json:"serial_number" binding:"required"`
	ManufactureDate     *models.Date `json:"manufacture_date"`
	OperationStartDate  *models.Date `json:"operation_start_date"`
	LastMaintenanceDate *models.Date `json:"last_maintenance_date"`
}

func (req *AirplaneRequest) validate(c *gin.Context, gormDB *gorm.DB) bool {
	errs := models.ValidateAirplane(
		req.Name,
		req.ManufactureDate,
		req.OperationStartDate,
		req.LastMaintenanceDate,
	)

	var airplaneType models.AirplaneType
	if err := gormDB.Where("id = ?", req.TypeID).First(&airplaneType).Error; err != nil {
		errs.Add("type_id", "airplane type not found")
	}

	if len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return false
	}
	return true
}

func CreateAirplane(c *gin.Context) {
	var req AirplaneRequest
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

	airplane := models.Airplane{
		TypeID:              req.TypeID,
		Name:                req.Name,
		SerialNumber:        req.SerialNumber,
		ManufactureDate:     req.ManufactureDate,
		OperationStartDate:  req.OperationStartDate,
		LastMaintenanceDate: req.LastMaintenanceDate,
	}

	if err := gormDB.Create(&airplane).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"serial_number": "airplane with this serial number already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create airplane.")
		return
	}

	c.JSON(http.StatusCreated, airplane)
}

func ListAirplanes(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)

	var totalCount int64
	gormDB.Model(&models.Airplane{}).Count(&totalCount)

	var airplanes []models.Airplane
	err := gormDB.Preload("Type").
		Order("serial_number").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&airplanes).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplanes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"airplanes": airplanes,
		"total":     totalCount,
		"page":      pagination.Page,
		"limit":     pagination.Limit,
	})
}

func GetAirplane(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var airplane models.Airplane
	if err := gormDB.Preload("Type").Where("id = ?", c.Param("id")).First(&airplane).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	c.JSON(http.StatusOK, airplane)
}

func UpdateAirplane(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var airplane models.Airplane
	if err := gormDB.Where("id = ?", c.Param("id")).First(&airplane).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving airplane.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values.
	var req AirplaneRequest
	if c.Request.Method == http.MethodPatch {
		req = AirplaneRequest{
			TypeID:              airplane.TypeID,
			Name:                airplane.Name,
			SerialNumber:        airplane.SerialNumber,
			ManufactureDate:     airplane.ManufactureDate,
			OperationStartDate:  airplane.OperationStartDate,
			LastMaintenanceDate: airplane.LastMaintenanceDate,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !req.validate(c, gormDB) {
		return
	}

	// Tickets already sold against the old type are not revalidated when the
	// airplane (or its type) changes; see DESIGN.md.
	airplane.TypeID = req.TypeID
	airplane.Name = req.Name
	airplane.SerialNumber = req.SerialNumber
	airplane.ManufactureDate = req.ManufactureDate
	airplane.OperationStartDate = req.OperationStartDate
	airplane.LastMaintenanceDate = req.LastMaintenanceDate

	if err := gormDB.Save(&airplane).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"serial_number": "airplane with this serial number already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update airplane.")
		return
	}

	c.JSON(http.StatusOK, airplane)
}

func DeleteAirplane(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Airplane{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete airplane.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Airplane not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Airplane deleted successfully."})
}

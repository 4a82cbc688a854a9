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

type PositionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func CreatePosition(c *gin.Context) {
	var req PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	if errs := models.ValidatePosition(req.Name); len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	position := models.Position{
		Name:        req.Name,
		Description: req.Description,
	}

	if err := gormDB.Create(&position).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"name": "position with this name already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create position.")
		return
	}

	c.JSON(http.StatusCreated, position)
}

func ListPositions(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)

	var totalCount int64
	gormDB.Model(&models.Position{}).Count(&totalCount)

	var positions []models.Position
	err := gormDB.Order("name").Offset(pagination.Offset).Limit(pagination.Limit).Find(&positions).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving positions.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"positions": positions,
		"total":     totalCount,
		"page":      pagination.Page,
		"limit":     pagination.Limit,
	})
}

func GetPosition(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var position models.Position
	if err := gormDB.Where("id = ?", c.Param("id")).First(&position).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Position not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving position.")
		return
	}

	c.JSON(http.StatusOK, position)
}

func UpdatePosition(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var position models.Position
	if err := gormDB.Where("id = ?", c.Param("id")).First(&position).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Position not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving position.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values.
	var req PositionRequest
	if c.Request.Method == http.MethodPatch {
		req = PositionRequest{
			Name:        position.Name,
			Description: position.Description,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if errs := models.ValidatePosition(req.Name); len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return
	}

	position.Name = req.Name
	position.Description = req.Description

	if err := gormDB.Save(&position).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"name": "position with this name already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update position.")
		return
	}

	c.JSON(http.StatusOK, position)
}

// DeletePosition detaches crew members rather than deleting them; the
// position_id foreign key is declared ON DELETE SET NULL.
func DeletePosition(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.Position{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete position.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Position not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Position deleted successfully."})
}

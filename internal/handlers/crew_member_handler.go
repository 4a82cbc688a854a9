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

type CrewMemberRequest struct {
	LicenseNumber      string        `json:"license_number" binding:"required"`
	FirstName          string        `json:"first_name" binding:"required"`
	LastName           string        `json:"last_name" binding:"required"`
	Gender             models.Gender `json:"gender" binding:"required"`
	DateOfBirth        models.Date   `json:"date_of_birth" binding:"required"`
	PositionID         *uint         `json:"position_id"`
	HiringDate         *models.Date  `json:"hiring_date"`
	PreviousExperience *int          `json:"previous_experience"`
}

type crewMemberListItem struct {
	ID            uint   `json:"id"`
	LicenseNumber string `json:"license_number"`
	FullName      string `json:"full_name"`
	Gender        string `json:"gender"`
	Position      string `json:"position,omitempty"`
}

type crewMemberDetail struct {
	models.CrewMember
	FullName        string `json:"full_name"`
	TotalExperience int    `json:"total_experience"`
}

func (req *CrewMemberRequest) validate(c *gin.Context, gormDB *gorm.DB) bool {
	errs := models.ValidateCrewMember(
		req.FirstName,
		req.LastName,
		req.Gender,
		req.DateOfBirth,
		req.HiringDate,
		req.PreviousExperience,
	)

	if req.PositionID != nil {
		var position models.Position
		if err := gormDB.Where("id = ?", *req.PositionID).First(&position).Error; err != nil {
			errs.Add("position_id", "position not found")
		}
	}

	if len(errs) > 0 {
		helpers.RespondWithValidationErrors(c, errs)
		return false
	}
	return true
}

func CreateCrewMember(c *gin.Context) {
	var req CrewMemberRequest
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

	crewMember := models.CrewMember{
		LicenseNumber:      req.LicenseNumber,
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Gender:             req.Gender,
		DateOfBirth:        req.DateOfBirth,
		PositionID:         req.PositionID,
		HiringDate:         req.HiringDate,
		PreviousExperience: req.PreviousExperience,
	}

	if err := gormDB.Create(&crewMember).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"license_number": "crew member with this license number already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew member.")
		return
	}

	c.JSON(http.StatusCreated, crewMember)
}

func ListCrewMembers(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	pagination := helpers.GetPagination(c, 10, 50)

	var totalCount int64
	gormDB.Model(&models.CrewMember{}).Count(&totalCount)

	var crewMembers []models.CrewMember
	err := gormDB.Preload("Position").
		Order("last_name, first_name").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&crewMembers).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew members.")
		return
	}

	items := make([]crewMemberListItem, 0, len(crewMembers))
	for i := range crewMembers {
		member := &crewMembers[i]
		item := crewMemberListItem{
			ID:            member.ID,
			LicenseNumber: member.LicenseNumber,
			FullName:      member.FullName(),
			Gender:        string(member.Gender),
		}
		if member.Position != nil {
			item.Position = member.Position.Name
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"crew_members": items,
		"total":        totalCount,
		"page":         pagination.Page,
		"limit":        pagination.Limit,
	})
}

func GetCrewMember(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var crewMember models.CrewMember
	if err := gormDB.Preload("Position").Where("id = ?", c.Param("id")).First(&crewMember).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew member.")
		return
	}

	c.JSON(http.StatusOK, crewMemberDetail{
		CrewMember:      crewMember,
		FullName:        crewMember.FullName(),
		TotalExperience: crewMember.TotalExperience(),
	})
}

func UpdateCrewMember(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	var crewMember models.CrewMember
	if err := gormDB.Where("id = ?", c.Param("id")).First(&crewMember).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving crew member.")
		return
	}

	// PATCH is partial: fields absent from the body keep their stored values.
	var req CrewMemberRequest
	if c.Request.Method == http.MethodPatch {
		req = CrewMemberRequest{
			LicenseNumber:      crewMember.LicenseNumber,
			FirstName:          crewMember.FirstName,
			LastName:           crewMember.LastName,
			Gender:             crewMember.Gender,
			DateOfBirth:        crewMember.DateOfBirth,
			PositionID:         crewMember.PositionID,
			HiringDate:         crewMember.HiringDate,
			PreviousExperience: crewMember.PreviousExperience,
		}
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !req.validate(c, gormDB) {
		return
	}

	crewMember.LicenseNumber = req.LicenseNumber
	crewMember.FirstName = req.FirstName
	crewMember.LastName = req.LastName
	crewMember.Gender = req.Gender
	crewMember.DateOfBirth = req.DateOfBirth
	crewMember.PositionID = req.PositionID
	crewMember.HiringDate = req.HiringDate
	crewMember.PreviousExperience = req.PreviousExperience

	if err := gormDB.Save(&crewMember).Error; err != nil {
		if helpers.IsUniqueViolation(err) {
			helpers.RespondWithValidationErrors(c, validation.Errors{"license_number": "crew member with this license number already exists"})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update crew member.")
		return
	}

	c.JSON(http.StatusOK, crewMember)
}

func DeleteCrewMember(c *gin.Context) {
	gormDB := middleware.GetDB(c)
	if gormDB == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	result := gormDB.Where("id = ?", c.Param("id")).Delete(&models.CrewMember{})
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete crew member.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Crew member not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew member deleted successfully."})
}

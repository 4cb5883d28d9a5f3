// Package profile provides HTTP handlers for athlete and organization profiles.
package profile

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// ProfileController handles profile related endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController creates a new instance of ProfileController
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

// GetMyAthleteProfile returns the calling athlete's profile.
// @Summary Get own athlete profile
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.AthleteUser
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /athlete/myprofile [get]
func (pc *ProfileController) GetMyAthleteProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var athlete model.AthleteUser
	if err := pc.DB.Preload("User").Where("user_id = ?", user.ID).First(&athlete).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, athlete)
}

// EditAthleteProfile updates non-empty fields of the calling athlete's profile.
// @Summary Edit own athlete profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableAthleteInfo true "Profile fields to update"
// @Success 200 {object} model.AthleteUser
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /athlete/profile [patch]
func (pc *ProfileController) EditAthleteProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var athlete model.AthleteUser
	if err := pc.DB.Preload("User").Where("user_id = ?", user.ID).First(&athlete).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	var update model.EditableAthleteInfo
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&athlete.EditableAthleteInfo, &update)

	if err := pc.DB.Save(&athlete).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, athlete)
}

// GetMyOrganizationProfile returns the calling organization's profile.
// @Summary Get own organization profile
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.OrganizationUser
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /organization/myprofile [get]
func (pc *ProfileController) GetMyOrganizationProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var organization model.OrganizationUser
	if err := pc.DB.Preload("User").Where("user_id = ?", user.ID).First(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, organization)
}

// EditOrganizationProfile updates non-empty fields of the calling organization's profile.
// @Summary Edit own organization profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableOrganizationInfo true "Profile fields to update"
// @Success 200 {object} model.OrganizationUser
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /organization/profile [patch]
func (pc *ProfileController) EditOrganizationProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var organization model.OrganizationUser
	if err := pc.DB.Preload("User").Where("user_id = ?", user.ID).First(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	var update model.EditableOrganizationInfo
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&organization.EditableOrganizationInfo, &update)

	if err := pc.DB.Save(&organization).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, organization)
}

// GetOrganizationByID returns a public view of an organization profile.
// @Summary Get organization by ID
// @Tags Profile
// @Produce json
// @Param organization_id path string true "Organization user id"
// @Success 200 {object} model.OrganizationUser
// @Failure 404 {object} utilities.ErrorResponse "Organization not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /organization/{organization_id} [get]
func (pc *ProfileController) GetOrganizationByID(c *gin.Context) {
	id := c.Param("organization_id")

	var organization model.OrganizationUser
	if err := pc.DB.Preload("User").Where("user_id = ?", id).First(&organization).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Organization not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve organization: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, organization)
}

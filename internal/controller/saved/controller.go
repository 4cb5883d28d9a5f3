// Package saved provides HTTP handlers for athlete bookmark operations.
package saved

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

// SavedController handles saved opportunity (bookmark) endpoints
type SavedController struct {
	DB *database.DBinstanceStruct
}

// NewSavedController creates a new instance of SavedController
func NewSavedController(db *database.DBinstanceStruct) *SavedController {
	return &SavedController{
		DB: db,
	}
}

// SaveOpportunity bookmarks an opportunity for the calling athlete.
// @Summary Save an opportunity
// @Description Only athlete users can access this endpoint
// @Tags Saved
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of the opportunity to save"
// @Success 201 {object} model.SavedOpportunity "Successfully saved"
// @Failure 400 {object} utilities.ErrorResponse "Already saved"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Opportunity not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity/{id}/save [post]
func (sc *SavedController) SaveOpportunity(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	opportunity := model.Opportunity{}
	if err := sc.DB.Where("id = ?", id).First(&opportunity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opportunity: %s", err.Error()),
		})
		return
	}

	existing := model.SavedOpportunity{}
	if err := sc.DB.
		Where("athlete_id = ? AND opportunity_id = ?", user.ID, opportunity.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already saved this opportunity",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing bookmark",
		})
		return
	}

	saved := model.SavedOpportunity{
		OpportunityID: opportunity.ID,
		AthleteID:     user.ID,
	}
	if err := sc.DB.Create(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save opportunity: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

// UnsaveOpportunity removes a bookmark made by the calling athlete.
// @Summary Remove a saved opportunity
// @Description Only athlete users can access this endpoint
// @Tags Saved
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of the opportunity to unsave"
// @Success 200 {object} utilities.MessageResponse "Successfully removed"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Bookmark not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity/{id}/save [delete]
func (sc *SavedController) UnsaveOpportunity(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	saved := model.SavedOpportunity{}
	if err := sc.DB.
		Where("athlete_id = ? AND opportunity_id = ?", user.ID, id).
		First(&saved).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Bookmark not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve bookmark: %s", err.Error()),
		})
		return
	}

	if err := sc.DB.Delete(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to remove bookmark: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Bookmark removed"})
}

// GetSavedOpportunities lists the calling athlete's bookmarked opportunities.
// @Summary Get saved opportunities
// @Description Only athlete users can access this endpoint
// @Tags Saved
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Opportunity
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /saved [get]
func (sc *SavedController) GetSavedOpportunities(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	opportunities := []model.Opportunity{}
	if err := sc.DB.
		Joins("JOIN saved_opportunities ON saved_opportunities.opportunity_id = opportunities.id").
		Where("saved_opportunities.athlete_id = ?", user.ID).
		Preload("Organization").
		Order("saved_opportunities.saved_at DESC").
		Find(&opportunities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch saved opportunities: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, opportunities)
}

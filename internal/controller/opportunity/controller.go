// Package opportunity provides HTTP handlers for opportunity related operations.
package opportunity

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// OpportunityController handles opportunity related endpoints
type OpportunityController struct {
	DB *database.DBinstanceStruct
}

// NewOpportunityController creates a new instance of OpportunityController
func NewOpportunityController(db *database.DBinstanceStruct) *OpportunityController {
	return &OpportunityController{
		DB: db,
	}
}

// CreateOpportunity handles the creation of a new opportunity by an organization user.
// Every new opportunity starts in PENDING_APPROVAL regardless of what the caller sends.
// @Summary Create opportunity based on given json structure
// @Description Only organization users have access to this endpoint
// @Tags Opportunity
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Opportunity body model.EditableOpportunityInfo true "Input opportunity information"
// @Success 201 {object} model.Opportunity "Successfully create opportunity"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token, or not an organization"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity [post]
func (oc *OpportunityController) CreateOpportunity(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	opportunity := model.Opportunity{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&opportunity.EditableOpportunityInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	opportunity.OrganizationID = user.ID
	opportunity.Status = model.StatusPendingApproval
	if err := oc.DB.Create(&opportunity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create opportunity: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, opportunity)
}

// GetOpportunities fetches active, non-expired opportunities that match query
// from the database and returns them as a JSON response.
// @Summary Get active opportunities based on query
// @Description Every query are not required, but they have specific use defined in their description
// @Tags Opportunity
// @Produce json
// @Param search query string false "Search from opportunity title with substring matching and case insensitive"
// @Param sport query string false "Sport field, must exactly match to get result"
// @Param type query string false "Type field with substring matching and case insensitive"
// @Param location query string false "Search from location with substring matching and case insensitive"
// @Param desc query boolean false "Sorting by creation time in descending if true, otherwise ascending"
// @Success 200 {array} model.Opportunity "Return active opportunity(s)"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity [get]
func (oc *OpportunityController) GetOpportunities(c *gin.Context) {
	rawSearch := c.Query("search")
	rawSport := c.Query("sport")
	rawType := c.Query("type")
	rawLocation := c.Query("location")
	rawDesc := c.Query("desc")

	opportunities := []model.Opportunity{}

	result := oc.DB.Preload("Organization").
		Preload("Organization.User").
		Where("status = ?", model.StatusActive).
		Where("deadline > ? OR deadline IS NULL", time.Now())

	if rawSearch != "" {
		result = result.Where("title ILIKE ?", "%"+rawSearch+"%")
	}

	if rawSport != "" {
		result = result.Where("sport = ?", rawSport)
	}

	if rawType != "" {
		result = result.Where("type ILIKE ?", "%"+rawType+"%")
	}

	if rawLocation != "" {
		result = result.Where("location ILIKE ?", "%"+rawLocation+"%")
	}

	result = result.Order(clause.OrderByColumn{
		Column: clause.Column{Name: "created_at"},
		Desc:   strings.ToLower(rawDesc) == "true",
	}).Find(&opportunities)

	if err := result.Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to fetch opportunities: ", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, opportunities)
}

// GetOpportunityByID fetches an opportunity by its ID from the database
// and returns it as a JSON response.
// @Summary Get opportunity by ID
// @Description Retrieve a specific opportunity using its unique ID
// @Tags Opportunity
// @Produce json
// @Param id path string true "ID of desired opportunity"
// @Success 200 {object} model.Opportunity "Return the opportunity with the specified ID"
// @Failure 404 {object} utilities.ErrorResponse "Opportunity not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity/{id} [get]
func (oc *OpportunityController) GetOpportunityByID(c *gin.Context) {
	id := c.Param("id")

	opportunity := model.Opportunity{}
	if err := oc.DB.
		Preload("Organization").
		Preload("Organization.User").
		Where("id = ?", id).
		First(&opportunity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opportunity: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// EditOpportunity allows an organization user to update an opportunity they own.
// Only content fields are editable, status is out of the owner's reach.
// @Summary Edit opportunity based on given json structure
// @Description Only the organization that owns the opportunity has access to this endpoint
// @Tags Opportunity
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired opportunity"
// @Param Opportunity body model.EditableOpportunityInfo true "Input opportunity information"
// @Success 200 {object} model.Opportunity "Successfully update opportunity"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token, or do not have permission to edit"
// @Failure 404 {object} utilities.ErrorResponse "Opportunity not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity/{id} [patch]
func (oc *OpportunityController) EditOpportunity(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	opportunity := model.Opportunity{}
	if err := oc.DB.Where("id = ?", id).First(&opportunity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opportunity: %s", err.Error()),
		})
		return
	}

	if opportunity.OrganizationID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to edit this opportunity",
		})
		return
	}

	// Bind incoming JSON to a temporary struct to avoid overwriting
	// ownership or status fields
	updated := model.Opportunity{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&updated.EditableOpportunityInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	if err := oc.DB.Model(&opportunity).Updates(updated.EditableOpportunityInfo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update opportunity: %s", err.Error()),
		})
		return
	}

	// Reload the opportunity to return the latest data
	if err := oc.DB.Where("id = ?", opportunity.ID).First(&opportunity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve updated opportunity: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, opportunity)
}

// DeleteOpportunity allows the owning organization or an admin to remove an opportunity.
// An opportunity that already has applications is closed instead of removed, so
// the applicants' history survives.
// @Summary Delete given opportunity ID
// @Description Only the organization that owns the opportunity or admin have access to this endpoint
// @Tags Opportunity
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of desired opportunity"
// @Success 200 {object} utilities.MessageResponse "Successfully delete or close opportunity"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token, or do not have permission to delete"
// @Failure 404 {object} utilities.ErrorResponse "Opportunity not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity/{id} [delete]
func (oc *OpportunityController) DeleteOpportunity(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	opportunity := model.Opportunity{}
	if err := oc.DB.Where("id = ?", id).First(&opportunity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opportunity: %s", err.Error()),
		})
		return
	}

	if opportunity.OrganizationID.String() != user.ID.String() {
		// Allow admins to bypass ownership check
		if user.Role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "You are not allowed to delete this opportunity",
			})
			return
		}
	}

	var applicationCount int64
	if err := oc.DB.Model(&model.Application{}).
		Where("opportunity_id = ?", opportunity.ID).
		Count(&applicationCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to count applications: %s", err.Error()),
		})
		return
	}

	if applicationCount > 0 {
		if err := oc.DB.Model(&opportunity).Update("status", model.StatusClosed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to close opportunity: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Opportunity closed"})
		return
	}

	if err := oc.DB.Delete(&opportunity).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete opportunity: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Opportunity deleted"})
}

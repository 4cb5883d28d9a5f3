// Package application provides HTTP handlers for opportunity application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// ApplicationController handles application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
}

// NewApplicationController creates a new instance of ApplicationController with the provided database connection.
func NewApplicationController(db *database.DBinstanceStruct) *ApplicationController {
	return &ApplicationController{
		DB: db,
	}
}

// ApplicationHandler handles the creation of a new application by an athlete user.
// @Summary Create application
// @Description Only athlete user can access this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param application body model.Application true "Application information"
// @Success 201 {object} model.Application "Successfully apply to opportunity"
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body, or already applied"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application [post]
func (ac *ApplicationController) ApplicationHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	// Extract application detail from request body
	application := model.Application{}
	if err := c.ShouldBindJSON(&application); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	application.AthleteID = user.ID

	// One application per athlete per opportunity
	existing := model.Application{}
	if err := ac.DB.
		Where("athlete_id = ? AND opportunity_id = ?", user.ID, application.OpportunityID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "You have already applied to this opportunity",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	application.Status = model.ApplicationStatusPending

	// Save application to database
	if err := ac.DB.Create(&application).Error; err != nil {
		var pqErr *pgconn.PgError
		// If the error is a foreign key violation, the opportunity id is invalid
		if errors.As(err, &pqErr) {
			if pqErr.Code == "23503" {
				c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
					Error: fmt.Sprintf("Invalid opportunity id: %s", err.Error()),
				})
				return
			}
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetApplicationsForOpportunity lists applications for one opportunity,
// visible only to the owning organization or an admin.
// @Summary Get applications for an opportunity
// @Description Only the organization that owns the opportunity or admin have access to this endpoint
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "ID of the opportunity"
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token, or do not have permission"
// @Failure 404 {object} utilities.ErrorResponse "Opportunity not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /opportunity/{id}/applications [get]
func (ac *ApplicationController) GetApplicationsForOpportunity(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	opportunity := model.Opportunity{}
	if err := ac.DB.Where("id = ?", id).First(&opportunity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Opportunity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve opportunity: %s", err.Error()),
		})
		return
	}

	if opportunity.OrganizationID.String() != user.ID.String() && user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view applications for this opportunity",
		})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.
		Preload("Athlete").
		Preload("Athlete.User").
		Where("opportunity_id = ?", opportunity.ID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

type statusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateApplicationStatus lets the owning organization move an application
// through its own status set, independent of the opportunity status.
// @Summary Update application status
// @Description Only the organization that owns the related opportunity has access to this endpoint
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param status body statusUpdateRequest true "New status"
// @Success 200 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Unknown status"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token, or do not have permission"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /application/{id} [patch]
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Status must be provided",
		})
		return
	}

	if !utilities.Contains(model.ApplicationStatuses, req.Status) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Unknown status: %s", req.Status),
		})
		return
	}

	application := model.Application{}
	if err := ac.DB.Preload("Opportunity").Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if application.Opportunity.OrganizationID.String() != user.ID.String() {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to update this application",
		})
		return
	}

	if err := ac.DB.Model(&application).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, application)
}

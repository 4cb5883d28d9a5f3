// Package admin provides HTTP handlers for the admin moderation endpoints:
// the filtered opportunity listing and the bulk lifecycle actions.
package admin

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// applicationCountSelect pulls each opportunity row together with a
// correlated count of its applications.
const applicationCountSelect = "opportunities.*, " +
	"(SELECT COUNT(*) FROM applications WHERE applications.opportunity_id = opportunities.id) AS application_count"

// AdminController handles admin moderation endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

type paginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type filterFacets struct {
	Sports   []string `json:"sports"`
	Types    []string `json:"types"`
	Statuses []string `json:"statuses"`
}

type listResponse struct {
	Data       []model.Opportunity `json:"data"`
	Pagination paginationInfo      `json:"pagination"`
	Filters    filterFacets        `json:"filters"`
}

// ListOpportunities returns a filtered, sorted page of opportunities plus the
// facet values needed to render the admin filter controls.
// @Summary List opportunities with filtering, sorting, and pagination
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param page query integer false "Page number, minimum 1" default(1)
// @Param limit query integer false "Page size, clamped to [1,100]" default(10)
// @Param search query string false "Case-insensitive substring match over title, organization name, description, location"
// @Param sport query string false "Sport filter, 'all' disables the filter"
// @Param type query string false "Type filter, 'all' disables the filter"
// @Param status query string false "Status filter, ignored when not a valid status"
// @Param fromDate query string false "Lower creation-date bound (inclusive), ISO date"
// @Param toDate query string false "Upper creation-date bound (inclusive), ISO date"
// @Param createdBy query string false "Owning organization id"
// @Param sortBy query string false "One of created_at, title, sport, type, status, deadline" default(created_at)
// @Param sortOrder query string false "asc or desc" default(desc)
// @Success 200 {object} listResponse
// @Failure 401 {object} utilities.ErrorResponse "Unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/opportunities [get]
func (ac *AdminController) ListOpportunities(c *gin.Context) {
	q := parseListQuery(c)

	rows := []model.Opportunity{}
	var total int64
	facets := filterFacets{
		Sports:   []string{},
		Types:    []string{},
		Statuses: []string{},
	}

	// All five queries run in one transaction so the page, the total and
	// the facet lists come from the same snapshot.
	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		if err := applyListFilters(tx.Model(&model.Opportunity{}), q).Count(&total).Error; err != nil {
			return err
		}

		page := applyListFilters(tx.Model(&model.Opportunity{}), q).
			Select(applicationCountSelect).
			Preload("Organization").
			Preload("Organization.User").
			Order(clause.OrderByColumn{
				Column: clause.Column{Table: "opportunities", Name: q.SortBy},
				Desc:   q.SortOrder == defaultSortOrder,
			}).
			Limit(q.Limit).
			Offset((q.Page - 1) * q.Limit)
		if err := page.Find(&rows).Error; err != nil {
			return err
		}

		// Facets always cover the whole dataset so the filter dropdowns
		// stay stable while the admin narrows the listing.
		for column, dest := range map[string]*[]string{
			"sport":  &facets.Sports,
			"type":   &facets.Types,
			"status": &facets.Statuses,
		} {
			if err := tx.Model(&model.Opportunity{}).
				Distinct().
				Order(column).
				Pluck(column, dest).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("admin opportunity listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch opportunities",
		})
		return
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	c.JSON(http.StatusOK, listResponse{
		Data: rows,
		Pagination: paginationInfo{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    int64(q.Page)*int64(q.Limit) < total,
			HasPrev:    q.Page > 1,
		},
		Filters: facets,
	})
}

// applyListFilters chains the listing filters onto the query, skipping every
// parameter the validation step already blanked out.
func applyListFilters(q *gorm.DB, lq listQuery) *gorm.DB {
	if lq.Search != "" {
		pattern := "%" + lq.Search + "%"
		q = q.Joins("JOIN organization_users ON organization_users.user_id = opportunities.organization_id").
			Where("opportunities.title ILIKE ? OR organization_users.name ILIKE ? OR opportunities.description ILIKE ? OR opportunities.location ILIKE ?",
				pattern, pattern, pattern, pattern)
	}

	if lq.Sport != "" {
		q = q.Where("opportunities.sport = ?", lq.Sport)
	}

	if lq.Type != "" {
		q = q.Where("opportunities.type = ?", lq.Type)
	}

	if lq.Status != "" {
		q = q.Where("opportunities.status = ?", lq.Status)
	}

	if lq.CreatedBy != "" {
		q = q.Where("opportunities.organization_id = ?", lq.CreatedBy)
	}

	if lq.FromDate != nil {
		q = q.Where("opportunities.created_at >= ?", *lq.FromDate)
	}

	if lq.ToDate != nil {
		q = q.Where("opportunities.created_at <= ?", *lq.ToDate)
	}

	return q
}

type bulkActionData struct {
	Status string `json:"status"`
}

type bulkActionRequest struct {
	OpportunityIDs []string        `json:"opportunityIds"`
	Action         string          `json:"action"`
	Data           *bulkActionData `json:"data,omitempty"`
}

// bulkUpdateResult summarizes a plain batch status write
type bulkUpdateResult struct {
	Updated int64  `json:"updated"`
	Status  string `json:"status"`
}

// bulkDeleteResult reports the two delete branches separately so the caller
// can tell what was closed and what is gone for good.
type bulkDeleteResult struct {
	SoftDeleted int `json:"softDeleted"`
	HardDeleted int `json:"hardDeleted"`
}

type bulkActionResponse struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result"`
	Message string      `json:"message"`
}

// BulkOpportunityAction applies one status transition to a set of opportunities.
// @Summary Apply a bulk lifecycle action to a set of opportunities
// @Description Only admin can access this endpoint.
// @Description Actions: approve, reject, pending, update-status (requires data.status), delete.
// @Description Delete closes opportunities that have applications and permanently removes the rest.
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param request body bulkActionRequest true "Opportunity ids and the action to apply"
// @Success 200 {object} bulkActionResponse
// @Failure 400 {object} utilities.ErrorResponse "No opportunities selected, invalid action, or missing status"
// @Failure 401 {object} utilities.ErrorResponse "Unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/opportunities [patch]
func (ac *AdminController) BulkOpportunityAction(c *gin.Context) {
	var req bulkActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	if len(req.OpportunityIDs) == 0 {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "No opportunities selected",
		})
		return
	}

	ids := make([]uuid.UUID, 0, len(req.OpportunityIDs))
	for _, raw := range req.OpportunityIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Invalid opportunity id: %s", raw),
			})
			return
		}
		ids = append(ids, id)
	}

	switch req.Action {
	case "approve":
		ac.applyStatus(c, ids, model.StatusActive, "approved")
	case "reject":
		ac.applyStatus(c, ids, model.StatusRejected, "rejected")
	case "pending":
		ac.applyStatus(c, ids, model.StatusPendingApproval, "reset to pending")
	case "update-status":
		if req.Data == nil || req.Data.Status == "" {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: "Status is required for update-status",
			})
			return
		}
		if !model.ValidOpportunityStatus(req.Data.Status) {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Unknown status: %s", req.Data.Status),
			})
			return
		}
		ac.applyStatus(c, ids, req.Data.Status, "updated")
	case "delete":
		ac.deleteOpportunities(c, ids)
	default:
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid action",
		})
	}
}

// applyStatus writes the target status to every matched opportunity in one batch
func (ac *AdminController) applyStatus(c *gin.Context, ids []uuid.UUID, status string, verb string) {
	res := ac.DB.Model(&model.Opportunity{}).Where("id IN ?", ids).Update("status", status)
	if res.Error != nil {
		log.Printf("bulk status update failed: %v", res.Error)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to update opportunities",
		})
		return
	}

	c.JSON(http.StatusOK, bulkActionResponse{
		Success: true,
		Result: bulkUpdateResult{
			Updated: res.RowsAffected,
			Status:  status,
		},
		Message: fmt.Sprintf("%d opportunities %s", res.RowsAffected, verb),
	})
}

// deleteOpportunities partitions the batch by application count: opportunities
// with applications are closed so history stays intact, the rest are removed
// permanently. Both phases commit together or not at all.
func (ac *AdminController) deleteOpportunities(c *gin.Context, ids []uuid.UUID) {
	var result bulkDeleteResult

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		var targets []model.Opportunity
		if err := tx.Model(&model.Opportunity{}).
			Select(applicationCountSelect).
			Where("id IN ?", ids).
			Find(&targets).Error; err != nil {
			return err
		}

		softIDs := make([]uuid.UUID, 0, len(targets))
		hardIDs := make([]uuid.UUID, 0, len(targets))
		for _, opp := range targets {
			if opp.ApplicationCount > 0 {
				softIDs = append(softIDs, opp.ID)
			} else {
				hardIDs = append(hardIDs, opp.ID)
			}
		}

		if len(softIDs) > 0 {
			if err := tx.Model(&model.Opportunity{}).
				Where("id IN ?", softIDs).
				Update("status", model.StatusClosed).Error; err != nil {
				return err
			}
		}

		if len(hardIDs) > 0 {
			// Saved bookmarks go with the row via ON DELETE CASCADE.
			if err := tx.Where("id IN ?", hardIDs).Delete(&model.Opportunity{}).Error; err != nil {
				return err
			}
		}

		result.SoftDeleted = len(softIDs)
		result.HardDeleted = len(hardIDs)
		return nil
	})
	if err != nil {
		log.Printf("bulk delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to delete opportunities",
		})
		return
	}

	c.JSON(http.StatusOK, bulkActionResponse{
		Success: true,
		Result:  result,
		Message: fmt.Sprintf("%d opportunities closed, %d permanently deleted", result.SoftDeleted, result.HardDeleted),
	})
}

// GetUsers lists user accounts, optionally filtered by role or username substring.
// @Summary Get users based on given query
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param role query string false "Only athlete, organization, or admin"
// @Param search query string false "Username substring, case insensitive"
// @Success 200 {array} model.User
// @Failure 401 {object} utilities.ErrorResponse "Unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	rawRole := c.Query("role")
	rawSearch := c.Query("search")

	result := ac.DB.Model(&model.User{})
	if rawRole != "" {
		result = result.Where("role = ?", rawRole)
	}
	if rawSearch != "" {
		result = result.Where("username ILIKE ?", "%"+rawSearch+"%")
	}

	var users []model.User
	if err := result.Order("created_at DESC").Find(&users).Error; err != nil {
		log.Printf("admin user listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to fetch users",
		})
		return
	}

	c.JSON(http.StatusOK, users)
}

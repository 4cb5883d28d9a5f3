// Package donation provides HTTP handlers for recording donations.
// Payment checkout happens outside this service, only the outcome lands here.
package donation

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// DonationController handles donation endpoints
type DonationController struct {
	DB *database.DBinstanceStruct
}

// NewDonationController creates a new instance of DonationController
func NewDonationController(db *database.DBinstanceStruct) *DonationController {
	return &DonationController{
		DB: db,
	}
}

type createDonationRequest struct {
	AmountCents int    `json:"amount_cents" binding:"required,gt=0"`
	Currency    string `json:"currency"`
	Note        string `json:"note"`
	Anonymous   bool   `json:"anonymous"`
}

// CreateDonation records a completed donation for the calling user.
// @Summary Record a donation
// @Tags Donation
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param donation body createDonationRequest true "Donation information"
// @Success 201 {object} model.Donation
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /donation [post]
func (dc *DonationController) CreateDonation(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req createDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "A positive amount_cents must be provided",
		})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	donation := model.Donation{
		AmountCents: req.AmountCents,
		Currency:    currency,
		Note:        req.Note,
	}
	if !req.Anonymous {
		donation.DonorID = &user.ID
	}

	if err := dc.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to record donation: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, donation)
}

// GetDonations lists recorded donations, newest first.
// @Summary Get donations
// @Description Only admin can access this endpoint
// @Tags Donation
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Donation
// @Failure 401 {object} utilities.ErrorResponse "Unauthorized"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /donation [get]
func (dc *DonationController) GetDonations(c *gin.Context) {
	donations := []model.Donation{}
	if err := dc.DB.Order("created_at DESC").Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch donations: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, donations)
}

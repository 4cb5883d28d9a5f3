// Package message provides HTTP handlers for direct messaging between users.
package message

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// MessageController handles messaging endpoints
type MessageController struct {
	DB *database.DBinstanceStruct
}

// NewMessageController creates a new instance of MessageController
func NewMessageController(db *database.DBinstanceStruct) *MessageController {
	return &MessageController{
		DB: db,
	}
}

type sendMessageRequest struct {
	RecipientID string `json:"recipient_id" binding:"required,uuid"`
	Body        string `json:"body" binding:"required"`
}

// SendMessage stores a direct message from the caller to another user.
// Delivery is fire-and-forget, the stored row is the only guarantee.
// @Summary Send a direct message
// @Tags Message
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param message body sendMessageRequest true "Recipient and body"
// @Success 201 {object} model.Message
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Recipient not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /message [post]
func (mc *MessageController) SendMessage(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Recipient and body must be provided",
		})
		return
	}

	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid recipient_id format",
		})
		return
	}

	recipient := model.User{}
	if err := mc.DB.Where("id = ?", recipientID).First(&recipient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Recipient not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	message := model.Message{
		SenderID:    user.ID,
		RecipientID: recipientID,
		Body:        req.Body,
	}
	if err := mc.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to send message: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetThread returns every message exchanged between the caller and another
// user, ordered oldest first.
// @Summary Get a message thread with another user
// @Tags Message
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param user_id path string true "The other participant's user id"
// @Success 200 {array} model.Message
// @Failure 400 {object} utilities.ErrorResponse "Invalid user id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /message/{user_id} [get]
func (mc *MessageController) GetThread(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	otherID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Invalid user id format",
		})
		return
	}

	messages := []model.Message{}
	if err := mc.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			user.ID, otherID, otherID, user.ID).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch messages: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, messages)
}

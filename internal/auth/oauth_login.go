package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"AthLink-backend/internal/database"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

// OauthLoginHandler holds dependencies for Google OAuth login endpoints.
type OauthLoginHandler struct {
	DB          *database.DBinstanceStruct
	Config      *oauth2.Config
	UserInfoURL string
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler.
func NewOauthLoginHandler(db *database.DBinstanceStruct, config *oauth2.Config, userInfoURL string) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:          db,
		Config:      config,
		UserInfoURL: userInfoURL,
	}
}

type googleUserInfo struct {
	GID       string `json:"sub"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Email     string `json:"email"`
}

// getUserInfo exchanges the authorization code from the request body for the
// Google profile of the user.
func (oh *OauthLoginHandler) getUserInfo(c *gin.Context) (googleUserInfo, error) {
	var uInfo googleUserInfo

	var code struct {
		Code string `json:"code" binding:"required"`
	}

	if err := c.ShouldBindJSON(&code); err != nil {
		return uInfo, fmt.Errorf("No authorization code provided: %s", err.Error())
	}

	token, err := oh.Config.Exchange(c.Request.Context(), code.Code)
	if err != nil {
		return uInfo, fmt.Errorf("Failed to exchange authorization code: %s", err.Error())
	}

	client := oh.Config.Client(c.Request.Context(), token)
	resp, err := client.Get(oh.UserInfoURL)
	if err != nil {
		return uInfo, fmt.Errorf("Failed to fetch user info: %s", err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		return uInfo, fmt.Errorf("Failed to decode user info: %s", err.Error())
	}

	return uInfo, nil
}

// AthleteGoogleLoginHandler handles Google login/registration for athlete users.
// @Summary Login or register an athlete with a Google authorization code
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} model.AthleteResponse "Existing athlete logged in"
// @Success 201 {object} model.AthleteResponse "New athlete registered"
// @Failure 400 {object} utilities.ErrorResponse "Missing or invalid authorization code"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google/athlete [post]
func (oh *OauthLoginHandler) AthleteGoogleLoginHandler(c *gin.Context) {
	uInfo, err := oh.getUserInfo(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	athleteUser := model.AthleteUser{
		User: model.User{
			Username: uInfo.Email,
			GoogleID: uInfo.GID,
			Role:     model.RoleAthlete,
			ContactInfo: model.ContactInfo{
				Email: &uInfo.Email,
			},
		},
		EditableAthleteInfo: model.EditableAthleteInfo{
			FirstName: uInfo.FirstName,
			LastName:  uInfo.LastName,
		},
	}

	status, err := oh.loginOrRegister(&athleteUser, &athleteUser.User, uInfo.GID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	accessToken, _, err := GenerateStandardToken(athleteUser.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(status, model.AthleteResponse{
		User:        athleteUser,
		AccessToken: accessToken,
	})
}

// OrganizationGoogleLoginHandler handles Google login/registration for organization users.
// @Summary Login or register an organization with a Google authorization code
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} model.OrganizationResponse "Existing organization logged in"
// @Success 201 {object} model.OrganizationResponse "New organization registered"
// @Failure 400 {object} utilities.ErrorResponse "Missing or invalid authorization code"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google/organization [post]
func (oh *OauthLoginHandler) OrganizationGoogleLoginHandler(c *gin.Context) {
	uInfo, err := oh.getUserInfo(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	organizationUser := model.OrganizationUser{
		User: model.User{
			Username: uInfo.Email,
			GoogleID: uInfo.GID,
			Role:     model.RoleOrganization,
			ContactInfo: model.ContactInfo{
				Email: &uInfo.Email,
			},
		},
		EditableOrganizationInfo: model.EditableOrganizationInfo{
			Name: fmt.Sprintf("%s %s", uInfo.FirstName, uInfo.LastName),
		},
	}

	status, err := oh.loginOrRegister(&organizationUser, &organizationUser.User, uInfo.GID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	accessToken, _, err := GenerateStandardToken(organizationUser.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(status, model.OrganizationResponse{
		User:        organizationUser,
		AccessToken: accessToken,
	})
}

// Callback echoes the authorization code back to the caller, used by the
// frontend during local development.
// @Summary OAuth redirect callback
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/google/callback [get]
func (oh *OauthLoginHandler) Callback(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code": c.Query("code"),
	})
}

// loginOrRegister creates the profile when the Google id is unseen, otherwise
// loads the existing profile. Returns the HTTP status to respond with.
func (oh *OauthLoginHandler) loginOrRegister(profile interface{}, baseUser *model.User, gid string) (int, error) {

	existing := model.User{}
	err := oh.DB.Where("google_id = ?", gid).First(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := oh.DB.Create(profile).Error; err != nil {
			return 0, fmt.Errorf("Failed to create user: %s", err.Error())
		}
		return http.StatusCreated, nil

	case err == nil:
		if err := oh.DB.Preload("User").Where("user_id = ?", existing.ID).First(profile).Error; err != nil {
			return 0, fmt.Errorf("Failed to retrieve user data: %s", err.Error())
		}
		return http.StatusOK, nil

	default:
		return 0, fmt.Errorf("Database error: %s", err.Error())
	}
}

package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"AthLink-backend/internal/auth"
	"AthLink-backend/internal/controller/admin"
	"AthLink-backend/internal/controller/application"
	"AthLink-backend/internal/controller/donation"
	"AthLink-backend/internal/controller/message"
	"AthLink-backend/internal/controller/opportunity"
	"AthLink-backend/internal/controller/profile"
	"AthLink-backend/internal/controller/saved"
	"AthLink-backend/internal/middleware"
	"AthLink-backend/internal/model"

	// Init swagger doc
	_ "AthLink-backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.openid",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)
	opportunityController := opportunity.NewOpportunityController(s.DB)
	applicationController := application.NewApplicationController(s.DB)
	savedController := saved.NewSavedController(s.DB)
	messageController := message.NewMessageController(s.DB)
	donationController := donation.NewDonationController(s.DB)
	profileController := profile.NewProfileController(s.DB)
	adminController := admin.NewAdminController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins, // Add your frontend URL
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // Enable cookies/auth
	}))
	r.Use(middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google/athlete", gAuth.AthleteGoogleLoginHandler)
			authRoute.POST("google/organization", gAuth.OrganizationGoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		// Public browsing
		v1.GET("/opportunity", opportunityController.GetOpportunities)
		v1.GET("/opportunity/:id", opportunityController.GetOpportunityByID)
		v1.GET("/organization/:organization_id", profileController.GetOrganizationByID)

		// Any routes
		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB))

			needAuth.POST("/message", messageController.SendMessage)
			needAuth.GET("/message/:user_id", messageController.GetThread)
			needAuth.POST("/donation", donationController.CreateDonation)

			// Organization endpoints
			needOrganization := needAuth.Group("")
			{
				needOrganization.Use(middleware.CheckRole(model.RoleOrganization))
				needOrganization.POST("/opportunity", opportunityController.CreateOpportunity)
				needOrganization.GET("/opportunity/:id/applications", applicationController.GetApplicationsForOpportunity)
				needOrganization.PATCH("/application/:id", applicationController.UpdateApplicationStatus)
				needOrganization.PATCH("/organization/profile", profileController.EditOrganizationProfile)
				needOrganization.GET("/organization/myprofile", profileController.GetMyOrganizationProfile)
			}

			needOrganizationAdmin := needAuth.Group("")
			{
				needOrganizationAdmin.Use(middleware.CheckRole(model.RoleOrganization, model.RoleAdmin))
				needOrganizationAdmin.PATCH("/opportunity/:id", opportunityController.EditOpportunity)
				needOrganizationAdmin.DELETE("/opportunity/:id", opportunityController.DeleteOpportunity)
			}

			// Athlete endpoints
			needAthlete := needAuth.Group("")
			{
				needAthlete.Use(middleware.CheckRole(model.RoleAthlete))
				needAthlete.PATCH("/athlete/profile", profileController.EditAthleteProfile)
				needAthlete.GET("/athlete/myprofile", profileController.GetMyAthleteProfile)
				needAthlete.POST("/application", applicationController.ApplicationHandler)
				needAthlete.POST("/opportunity/:id/save", savedController.SaveOpportunity)
				needAthlete.DELETE("/opportunity/:id/save", savedController.UnsaveOpportunity)
				needAthlete.GET("/saved", savedController.GetSavedOpportunities)
			}

			// Admin moderation endpoints
			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))
				needAdmin.GET("opportunities", adminController.ListOpportunities)
				needAdmin.PATCH("opportunities", adminController.BulkOpportunityAction)
				needAdmin.GET("users", adminController.GetUsers)
				needAdmin.GET("donations", donationController.GetDonations)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}

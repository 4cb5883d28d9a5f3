package saved

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"AthLink-backend/internal/auth"
	"AthLink-backend/internal/database"
	"AthLink-backend/internal/middleware"
	"AthLink-backend/internal/model"
	"AthLink-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var midTeardown func(context.Context, ...testcontainers.TerminateOption) error
	midTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if midTeardown != nil {
		_ = midTeardown(ctx)
	}
}

func savedRouter() *gin.Engine {
	r := gin.Default()
	sc := &SavedController{
		DB: testDB,
	}
	r.POST("/opportunity/:id/save", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAthlete), sc.SaveOpportunity)
	r.DELETE("/opportunity/:id/save", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAthlete), sc.UnsaveOpportunity)
	r.GET("/saved", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAthlete), sc.GetSavedOpportunities)
	return r
}

func athleteToken(t *testing.T) string {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	return token
}

func TestSaveAndListOpportunity(t *testing.T) {
	token := athleteToken(t)
	r := savedRouter()

	endpoint := "/opportunity/" + database.TestOpportunity1.ID.String() + "/save"
	rec, resp := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, database.TestOpportunity1.ID.String(), resp["opportunity_id"])

	// Saving twice is rejected
	rec, resp = testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPost)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "You have already saved this opportunity", resp["error"])

	// The bookmark shows up in the athlete's saved listing
	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/saved", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var listed []model.Opportunity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	found := false
	for _, opp := range listed {
		if opp.ID == database.TestOpportunity1.ID {
			found = true
		}
	}
	assert.True(t, found, "saved opportunity missing from listing")
}

func TestSaveNonexistentOpportunity(t *testing.T) {
	token := athleteToken(t)
	r := savedRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/opportunity/00000000-0000-0000-0000-000000000000/save", http.MethodPost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Opportunity not found", resp["error"])
}

func TestUnsaveOpportunity(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete2.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r := savedRouter()

	endpoint := "/opportunity/" + database.TestOpportunity3.ID.String() + "/save"
	rec, _ := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPost)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bookmark removed", resp["message"])

	// Removing again fails since the bookmark is gone
	rec, resp = testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Bookmark not found", resp["error"])
}

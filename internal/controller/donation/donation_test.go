package donation

import (
	"context"
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

func donationRouter() *gin.Engine {
	r := gin.Default()
	dc := &DonationController{
		DB: testDB,
	}
	r.POST("/donation", middleware.RequireAuth(testDB), dc.CreateDonation)
	r.GET("/donation", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin), dc.GetDonations)
	return r
}

func TestCreateDonation(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r := donationRouter()

	body := gin.H{
		"amount_cents": 2500,
		"note":         "Keep it up",
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/donation", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, float64(2500), resp["amount_cents"])
	assert.Equal(t, "USD", resp["currency"])
	assert.Equal(t, database.TestUserAthlete1.ID.String(), resp["donor_id"])
}

func TestCreateAnonymousDonation(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r := donationRouter()

	body := gin.H{
		"amount_cents": 1000,
		"currency":     "EUR",
		"anonymous":    true,
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/donation", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "EUR", resp["currency"])
	assert.Nil(t, resp["donor_id"])
}

func TestCreateDonationRejectsNonPositiveAmount(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	r := donationRouter()

	for _, amount := range []int{0, -500} {
		rec, _ := testutil.MakeJSONRequest(gin.H{"amount_cents": amount}, token, r, "/donation", http.MethodPost)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount_cents=%d", amount)
	}
}

func TestGetDonationsAdminOnly(t *testing.T) {
	r := donationRouter()

	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)
	rec, _ := testutil.MakeJSONRequest(nil, adminToken, r, "/donation", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	athleteToken, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete1.Username, database.TestSeedPassword)
	require.NoError(t, err)
	rec, _ = testutil.MakeJSONRequest(nil, athleteToken, r, "/donation", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"AthLink-backend/internal/auth"
	"AthLink-backend/internal/database"
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

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(testDB), checkUserHandler)
	r.GET("/admin-only", RequireAuth(testDB), CheckRole(model.RoleAdmin), checkUserHandler)
	return r
}

func checkUserHandler(c *gin.Context) {
	u, exist := c.Get("user")
	if !exist {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestUserAthlete1.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["ok"])

	user, ok := resp["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, database.TestUserAthlete1.ID.String(), user["id"])
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := protectedEngine()

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthGarbageToken(t *testing.T) {
	rec, _ := testutil.MakeJSONRequest(nil, "not.a.jwt", protectedEngine(), "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    auth.JwtIssuer,
		Subject:   database.TestUserAthlete1.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
	})
	signed, err := expired.SignedString([]byte(auth.SECRET_KEY))
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, signed, protectedEngine(), "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token expired", resp["error"])
}

func TestRequireAuthWrongIssuer(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    "SomeoneElse",
		Subject:   database.TestUserAthlete1.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := forged.SignedString([]byte(auth.SECRET_KEY))
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, signed, protectedEngine(), "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token issuer", resp["error"])
}

func TestRequireAuthUnknownUser(t *testing.T) {
	ghost := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    auth.JwtIssuer,
		Subject:   "00000000-0000-0000-0000-000000000000",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := ghost.SignedString([]byte(auth.SECRET_KEY))
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, signed, protectedEngine(), "/protected", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not exist", resp["error"])
}

func TestCheckRoleAllowsAdmin(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Username, database.TestSeedPassword)
	require.NoError(t, err)

	rec, _ := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/admin-only", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCheckRoleRejectsOtherRoles(t *testing.T) {
	for _, username := range []string{database.TestUserAthlete1.Username, database.TestUserOrg1.Username} {
		token, err := auth.GetAccessToken(t, testDB, username, database.TestSeedPassword)
		require.NoError(t, err)

		rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/admin-only", http.MethodGet)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", resp["error"])
	}
}

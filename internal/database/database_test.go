package database

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	m "AthLink-backend/internal/model"

	// Load env
	_ "github.com/joho/godotenv/autoload"
)

var testDB *DBinstanceStruct

func TestMain(tm *testing.M) {
	var err error
	var dbTeardown func(context.Context, ...testcontainers.TerminateOption) error
	dbTeardown, testDB, err = GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	tm.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if dbTeardown != nil {
		_ = dbTeardown(ctx)
	}
}

func TestHealth(t *testing.T) {
	stats := testDB.Health()

	if stats["status"] != "up" {
		t.Fatalf("expected status to be up, got %s", stats["status"])
	}

	if _, ok := stats["error"]; ok {
		t.Fatalf("expected error not to be present")
	}

	if stats["message"] != "It's healthy" {
		t.Fatalf("expected message to be 'It's healthy', got %s", stats["message"])
	}
}

func TestSeededUsers(t *testing.T) {
	var count int64
	require.NoError(t, testDB.Model(&m.User{}).Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(5))

	assert.NotEqual(t, "", TestUserAthlete1.ID.String())
	assert.Equal(t, m.RoleAthlete, TestUserAthlete1.Role)
	assert.Equal(t, m.RoleOrganization, TestUserOrg1.Role)
	assert.Equal(t, m.RoleAdmin, TestAdminUser.Role)
}

func TestSeededOpportunities(t *testing.T) {
	var count int64
	require.NoError(t, testDB.Model(&m.Opportunity{}).Count(&count).Error)
	assert.GreaterOrEqual(t, count, int64(3))

	// Seeded rows get a database-generated uuid primary key
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", TestOpportunity1.ID.String())
	assert.Equal(t, m.StatusActive, TestOpportunity1.Status)
	assert.Equal(t, m.StatusPendingApproval, TestOpportunity2.Status)
}

func TestGetTestDBIsSingleton(t *testing.T) {
	_, again, err := GetTestDB()
	require.NoError(t, err)
	assert.Same(t, testDB, again)
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "AthLink-backend/internal/model"
	"AthLink-backend/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestAdminUser    m.User
	TestUserAthlete1 m.User
	TestUserAthlete2 m.User
	TestUserOrg1     m.User
	TestUserOrg2     m.User
	TestAthlete1     m.AthleteUser
	TestAthlete2     m.AthleteUser
	TestOrg1         m.OrganizationUser
	TestOrg2         m.OrganizationUser

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded opportunities
	TestOpportunity1 m.Opportunity
	TestOpportunity2 m.Opportunity
	TestOpportunity3 m.Opportunity
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		useConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample athletes, organizations and opportunities
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample athlete and organization records (2 each) if empty.
func seedTestData(db *DBinstanceStruct) error {
	var userCount int64
	if err := db.Model(&m.User{}).Count(&userCount).Error; err != nil {
		return err
	}

	// Ignore admin user that got create during NewDBInstance
	if userCount > 1 {
		return loadTestData(db)
	}

	tels := []*string{ptr("0100000001"), ptr("0100000002"), ptr("0200000001"), ptr("0200000002"), ptr("0300000001")}
	emails := []*string{ptr("athlete1@example.com"), ptr("athlete2@example.com"), ptr("org1@example.com"), ptr("org2@example.com"), ptr("admin@example.com")}
	userSpecs := []struct {
		username string
		email    *string
		tel      *string
		role     string
	}{
		{"athlete_user_1", emails[0], tels[0], m.RoleAthlete},
		{"athlete_user_2", emails[1], tels[1], m.RoleAthlete},
		{"org_user_1", emails[2], tels[2], m.RoleOrganization},
		{"org_user_2", emails[3], tels[3], m.RoleOrganization},
		{"admin_user", emails[4], tels[4], m.RoleAdmin},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: s.username,
			ContactInfo: m.ContactInfo{
				Email: s.email,
				Tel:   s.tel,
			},
			Role:           s.role,
			Password:       hashedPwd,
			ProfilePicture: "",
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Map created users to exported variables
	for _, u := range users {
		switch u.Username {
		case "athlete_user_1":
			TestUserAthlete1 = u
		case "athlete_user_2":
			TestUserAthlete2 = u
		case "org_user_1":
			TestUserOrg1 = u
		case "org_user_2":
			TestUserOrg2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	soccer, basketball := "Soccer", "Basketball"
	forward, guard := "Forward", "Point Guard"

	athleteProfiles := []m.AthleteUser{
		{
			UserID: TestUserAthlete1.ID,
			EditableAthleteInfo: m.EditableAthleteInfo{
				FirstName:      "Alice",
				LastName:       "Nguyen",
				Sport:          &soccer,
				Position:       &forward,
				GraduationYear: ptr("2026"),
				Bio:            "Striker with regional championship experience.",
				Highlights:     pq.StringArray{"All-state 2024", "Team captain"},
			},
		},
		{
			UserID: TestUserAthlete2.ID,
			EditableAthleteInfo: m.EditableAthleteInfo{
				FirstName:      "Bob",
				LastName:       "Somsak",
				Sport:          &basketball,
				Position:       &guard,
				GraduationYear: ptr("2025"),
				Bio:            "Playmaker, strong court vision.",
				Highlights:     pq.StringArray{"Conference MVP 2023"},
			},
		},
	}
	if err := db.Create(&athleteProfiles).Error; err != nil {
		return err
	}

	organizations := []m.OrganizationUser{
		{
			UserID: TestUserOrg1.ID,
			EditableOrganizationInfo: m.EditableOrganizationInfo{
				Name:     "Northside Athletics",
				Overview: "Collegiate recruiting program for team sports",
				Website:  "https://northside.example.com",
				City:     ptr("Austin"),
				State:    ptr("TX"),
			},
		},
		{
			UserID: TestUserOrg2.ID,
			EditableOrganizationInfo: m.EditableOrganizationInfo{
				Name:     "Pacific Talent Group",
				Overview: "Scouting agency for west coast programs",
				Website:  "https://pacifictalent.example.com",
				City:     ptr("Portland"),
				State:    ptr("OR"),
			},
		},
	}
	if err := db.Create(&organizations).Error; err != nil {
		return err
	}

	// Assign exported profile structs
	TestAthlete1 = athleteProfiles[0]
	TestAthlete2 = athleteProfiles[1]
	TestOrg1 = organizations[0]
	TestOrg2 = organizations[1]

	// Seed opportunities (only if none exist yet)
	var oppCount int64
	if err := db.Model(&m.Opportunity{}).Count(&oppCount).Error; err != nil {
		return err
	}
	if oppCount == 0 {
		dl1 := time.Now().AddDate(0, 1, 0)
		dl2 := time.Now().AddDate(0, 2, 0)

		opportunities := []m.Opportunity{
			{
				OrganizationID: TestOrg1.UserID,
				Status:         m.StatusActive,
				EditableOpportunityInfo: m.EditableOpportunityInfo{
					Title:        "Varsity Soccer Scholarship",
					Sport:        "Soccer",
					Type:         "Scholarship",
					Description:  "Full-ride scholarship for a forward position.",
					Location:     "Austin, TX",
					Requirements: pq.StringArray{"Varsity experience", "GPA 3.0+"},
					Benefits:     pq.StringArray{"Full tuition", "Housing"},
					SalaryMin:    intPtr(0),
					SalaryMax:    intPtr(0),
					Deadline:     &dl1,
				},
			},
			{
				OrganizationID: TestOrg1.UserID,
				Status:         m.StatusPendingApproval,
				EditableOpportunityInfo: m.EditableOpportunityInfo{
					Title:        "Assistant Basketball Coach",
					Sport:        "Basketball",
					Type:         "Full-time",
					Description:  "Coach development program for former players.",
					Location:     "Austin, TX",
					Requirements: pq.StringArray{"Playing experience"},
					Benefits:     pq.StringArray{"Health insurance"},
					SalaryMin:    intPtr(42000),
					SalaryMax:    intPtr(55000),
					Deadline:     &dl2,
				},
			},
			{
				OrganizationID: TestOrg2.UserID,
				Status:         m.StatusActive,
				EditableOpportunityInfo: m.EditableOpportunityInfo{
					Title:        "Track & Field Development Camp",
					Sport:        "Track",
					Type:         "Camp",
					Description:  "Summer development camp with scout evaluations.",
					Location:     "Portland, OR",
					Requirements: pq.StringArray{"Open tryout"},
					Benefits:     pq.StringArray{"Meals", "Gear"},
				},
			},
		}

		if err := db.Create(&opportunities).Error; err != nil {
			return err
		}
		if len(opportunities) > 0 {
			TestOpportunity1 = opportunities[0]
		}
		if len(opportunities) > 1 {
			TestOpportunity2 = opportunities[1]
		}
		if len(opportunities) > 2 {
			TestOpportunity3 = opportunities[2]
		}
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"athlete_user_1", "athlete_user_2", "org_user_1", "org_user_2", "admin_user",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "athlete_user_1":
			TestUserAthlete1 = u
		case "athlete_user_2":
			TestUserAthlete2 = u
		case "org_user_1":
			TestUserOrg1 = u
		case "org_user_2":
			TestUserOrg2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	// Load athlete profiles
	_ = db.First(&TestAthlete1, "user_id = ?", TestUserAthlete1.ID).Error
	_ = db.First(&TestAthlete2, "user_id = ?", TestUserAthlete2.ID).Error

	// Load organization profiles
	_ = db.First(&TestOrg1, "user_id = ?", TestUserOrg1.ID).Error
	_ = db.First(&TestOrg2, "user_id = ?", TestUserOrg2.ID).Error

	// Load first three opportunities deterministically
	var opportunities []m.Opportunity
	if err := db.Order("created_at ASC").Limit(3).Find(&opportunities).Error; err == nil {
		if len(opportunities) > 0 {
			TestOpportunity1 = opportunities[0]
		}
		if len(opportunities) > 1 {
			TestOpportunity2 = opportunities[1]
		}
		if len(opportunities) > 2 {
			TestOpportunity3 = opportunities[2]
		}
	}

	return nil
}

// ptr helper
func ptr[T any](v T) *T { return &v }

func intPtr(v int) *int { return &v }

package utilities

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"AthLink-backend/internal/model"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-password", hash)

	assert.True(t, VerifyPassword("s3cret-password", hash))
	assert.False(t, VerifyPassword("wrong-password", hash))
	assert.False(t, VerifyPassword("s3cret-password", "not-a-hash"))
}

func TestContains(t *testing.T) {
	roles := []string{"athlete", "organization", "admin"}

	assert.True(t, Contains(roles, "athlete"))
	assert.True(t, Contains(roles, "admin"))
	assert.False(t, Contains(roles, "Athlete"))
	assert.False(t, Contains(roles, ""))
	assert.False(t, Contains(nil, "athlete"))
}

func TestMergeNonEmpty(t *testing.T) {
	existingSport := "Soccer"
	dst := model.EditableAthleteInfo{
		FirstName: "Alice",
		LastName:  "Nguyen",
		Sport:     &existingSport,
		Bio:       "Original bio",
	}

	newSport := "Basketball"
	src := model.EditableAthleteInfo{
		Sport: &newSport,
		Bio:   "Updated bio",
	}

	MergeNonEmpty(&dst, &src)

	// Touched fields change
	assert.Equal(t, "Basketball", *dst.Sport)
	assert.Equal(t, "Updated bio", dst.Bio)

	// Untouched fields survive
	assert.Equal(t, "Alice", dst.FirstName)
	assert.Equal(t, "Nguyen", dst.LastName)
}

package models_test

import (
	"aura/backend/internal/models"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestUserBeforeCreate_GeneratesUUID verifies that the BeforeCreate hook generates a valid UUID.
func TestUserBeforeCreate_GeneratesUUID(t *testing.T) {
	// Arrange
	user := &models.User{
		Email: "resident@example.com",
		Phone: "9876543210",
	}
	assert.Empty(t, user.ID, "User ID should be empty before BeforeCreate")

	// Act - GORM would call this automatically
	err := user.BeforeCreate(nil)

	// Assert
	assert.NoError(t, err)
	parsed, parseErr := uuid.Parse(user.ID)
	assert.NoError(t, parseErr, "User ID must be a valid UUID string")
	assert.NotEqual(t, uuid.Nil, parsed)
}

// TestUserBeforeCreate_PreservesExistingID verifies that the hook doesn't overwrite an existing ID.
func TestUserBeforeCreate_PreservesExistingID(t *testing.T) {
	existingID := uuid.New().String()
	user := &models.User{ID: existingID, Email: "admin@example.com", IsAdmin: true}

	err := user.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

// TestRecordHooks_UniqueIDs verifies complaints and reservations receive distinct IDs.
func TestRecordHooks_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 3; i++ {
		c := &models.Complaint{Subject: "leak"}
		r := &models.Reservation{PropertyID: "1"}
		assert.NoError(t, c.BeforeCreate(nil))
		assert.NoError(t, r.BeforeCreate(nil))

		assert.NotContains(t, seen, c.ID)
		seen[c.ID] = true
		assert.NotContains(t, seen, r.ID)
		seen[r.ID] = true
	}

	assert.Len(t, seen, 6)
}

// TestComplaintStructTags guards the persistence layout of complaint rows.
func TestComplaintStructTags(t *testing.T) {
	complaintType := reflect.TypeOf(models.Complaint{})

	idField, found := complaintType.FieldByName("ID")
	assert.True(t, found)
	assert.Contains(t, idField.Tag.Get("gorm"), "primaryKey")

	analysisField, found := complaintType.FieldByName("Analysis")
	assert.True(t, found)
	assert.Contains(t, analysisField.Tag.Get("gorm"), "embeddedPrefix:analysis_")

	stepsField, found := reflect.TypeOf(models.TriageResult{}).FieldByName("ActionSteps")
	assert.True(t, found)
	assert.Contains(t, stepsField.Tag.Get("gorm"), "type:text[]")
	assert.Equal(t, "actionSteps", stepsField.Tag.Get("json"))
}

func TestStatusValidity(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		check func() bool
	}{
		{"complaint under_review", true, models.ComplaintUnderReview.Valid},
		{"complaint resolved", true, models.ComplaintResolved.Valid},
		{"complaint legacy 'under work'", false, models.ComplaintStatus("under work").Valid},
		{"reservation pending", true, models.ReservationPending.Valid},
		{"reservation declined", false, models.ReservationStatus("declined").Valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.check())
		})
	}
}

func TestComplaintPatchApply(t *testing.T) {
	subject := "Ceiling leak"
	status := models.ComplaintResolved
	c := &models.Complaint{Subject: "leak", Description: "water everywhere", Status: models.ComplaintUnderReview}

	models.ComplaintPatch{Subject: &subject, Status: &status}.Apply(c)

	assert.Equal(t, "Ceiling leak", c.Subject)
	assert.Equal(t, "water everywhere", c.Description, "nil fields must not change")
	assert.Equal(t, models.ComplaintResolved, c.Status)
}

func TestSessionDisplayName(t *testing.T) {
	assert.Equal(t, "asha", models.Session{Email: "asha@example.com"}.DisplayName())
	assert.Equal(t, "nodomain", models.Session{Email: "nodomain"}.DisplayName())
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range models.Categories {
		assert.True(t, models.IsValidCategory(c), string(c))
	}
	assert.False(t, models.IsValidCategory("Noise"))
}

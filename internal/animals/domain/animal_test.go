package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("AVAILABLE")
	require.NoError(t, err)
	require.Equal(t, StatusAvailable, status)

	status, err = ParseStatus("ADOPTED")
	require.NoError(t, err)
	require.Equal(t, StatusAdopted, status)
}

func TestParseStatus_RejectsUnknownTokens(t *testing.T) {
	for _, token := range []string{"", "available", "Adopted", "PENDING", "SOLD"} {
		_, err := ParseStatus(token)
		require.ErrorIs(t, err, ErrUnknownStatus, "token %q", token)
	}
}

func TestAgeAt_FloorsWholeYears(t *testing.T) {
	animal := Animal{BirthDate: date(2020, time.January, 1)}
	require.Equal(t, 4, animal.AgeAt(date(2024, time.October, 10)))
}

func TestAgeAt_BirthdayNotYetReached(t *testing.T) {
	animal := Animal{BirthDate: date(2020, time.June, 15)}
	require.Equal(t, 3, animal.AgeAt(date(2024, time.June, 14)))
	require.Equal(t, 4, animal.AgeAt(date(2024, time.June, 15)))
	require.Equal(t, 4, animal.AgeAt(date(2024, time.June, 16)))
}

func TestAgeAt_NewbornIsZero(t *testing.T) {
	animal := Animal{BirthDate: date(2024, time.March, 3)}
	require.Equal(t, 0, animal.AgeAt(date(2024, time.March, 3)))
	require.Equal(t, 0, animal.AgeAt(date(2024, time.December, 31)))
}

func TestUpdateStatus(t *testing.T) {
	animal := Animal{Status: StatusAvailable}
	require.NoError(t, animal.UpdateStatus(StatusAdopted))
	require.Equal(t, StatusAdopted, animal.Status)

	require.NoError(t, animal.UpdateStatus(StatusAvailable))
	require.Equal(t, StatusAvailable, animal.Status)

	err := animal.UpdateStatus(Status("LOST"))
	require.ErrorIs(t, err, ErrUnknownStatus)
	require.Equal(t, StatusAvailable, animal.Status)
}

func TestRename_RejectsBlankNames(t *testing.T) {
	animal := Animal{Name: "Luna"}
	require.ErrorIs(t, animal.Rename("   "), ErrEmptyName)
	require.Equal(t, "Luna", animal.Name)

	require.NoError(t, animal.Rename("Nina"))
	require.Equal(t, "Nina", animal.Name)
}

func TestRecategorize_RejectsBlankCategories(t *testing.T) {
	animal := Animal{Category: "dog"}
	require.ErrorIs(t, animal.Recategorize(""), ErrEmptyCategory)
	require.NoError(t, animal.Recategorize("cat"))
	require.Equal(t, "cat", animal.Category)
}

func TestClone_IsIndependent(t *testing.T) {
	original := &Animal{ID: 7, Name: "Rex", Status: StatusAvailable}
	clone := original.Clone()
	clone.Name = "Max"
	require.Equal(t, "Rex", original.Name)
	require.Equal(t, int64(7), clone.ID)
}

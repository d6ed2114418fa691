package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
)

func TestDateOnly_RoundTrip(t *testing.T) {
	var decoded DateOnly
	require.NoError(t, json.Unmarshal([]byte(`"2020-06-15"`), &decoded))
	require.Equal(t, time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC), decoded.Time)

	encoded, err := json.Marshal(decoded)
	require.NoError(t, err)
	require.Equal(t, `"2020-06-15"`, string(encoded))
}

func TestDateOnly_RejectsOtherFormats(t *testing.T) {
	for _, payload := range []string{`"15-06-2020"`, `"2020/06/15"`, `"2020-06-15T00:00:00Z"`, `"june"`, `123`} {
		var decoded DateOnly
		require.Error(t, json.Unmarshal([]byte(payload), &decoded), "payload %s", payload)
	}
}

func TestToMutationInput_MapsAllFields(t *testing.T) {
	name := "Luna"
	description := "quiet"
	imageURL := "https://example.org/luna.jpg"
	category := "dog"
	birth := DateOnly{time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)}
	status := "AVAILABLE"

	input, err := ToMutationInput(AnimalRequest{
		Name:        &name,
		Description: &description,
		ImageURL:    &imageURL,
		Category:    &category,
		BirthDate:   &birth,
		Status:      &status,
	})
	require.NoError(t, err)
	require.Equal(t, "Luna", input.Name)
	require.Equal(t, "quiet", input.Description)
	require.Equal(t, "https://example.org/luna.jpg", input.ImageURL)
	require.Equal(t, "dog", input.Category)
	require.NotNil(t, input.BirthDate)
	require.Equal(t, birth.Time, *input.BirthDate)
	require.NotNil(t, input.Status)
	require.Equal(t, domain.StatusAvailable, *input.Status)
}

func TestToMutationInput_RejectsUnknownStatus(t *testing.T) {
	status := "PENDING"
	_, err := ToMutationInput(AnimalRequest{Status: &status})
	require.ErrorIs(t, err, domain.ErrUnknownStatus)
}

func TestToMutationInput_AbsentFieldsStayZero(t *testing.T) {
	input, err := ToMutationInput(AnimalRequest{})
	require.NoError(t, err)
	require.Empty(t, input.Name)
	require.Nil(t, input.BirthDate)
	require.Nil(t, input.Status)
}

func TestFromProjection_ComputesAge(t *testing.T) {
	animal := &domain.Animal{
		ID:        3,
		Name:      "Luna",
		Category:  "dog",
		BirthDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusAvailable,
	}
	createdAt := time.Date(2024, time.October, 1, 8, 0, 0, 0, time.UTC)
	proj := types.NewAnimalProjection(animal, createdAt, createdAt)

	view := fromProjectionAt(proj, time.Date(2024, time.October, 10, 0, 0, 0, 0, time.UTC))
	require.Equal(t, int64(3), view.ID)
	require.Equal(t, 4, view.Age)
	require.Equal(t, "AVAILABLE", view.Status)
	require.Equal(t, createdAt, view.CreatedAt)

	encoded, err := json.Marshal(view)
	require.NoError(t, err)
	require.Contains(t, string(encoded), `"birthDate":"2020-01-01"`)
	require.NotContains(t, string(encoded), `"description"`)
}

func TestFromPage_MapsPagingMetadata(t *testing.T) {
	animal := &domain.Animal{
		ID:        1,
		Name:      "Luna",
		Category:  "dog",
		BirthDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.StatusAvailable,
	}
	now := time.Now()
	page := &types.AnimalPage{
		Items:      []*types.AnimalProjection{types.NewAnimalProjection(animal, now, now)},
		Number:     0,
		Size:       20,
		TotalItems: 41,
	}

	view := FromPage(page)
	require.Len(t, view.Items, 1)
	require.Equal(t, 0, view.Page)
	require.Equal(t, 20, view.Size)
	require.Equal(t, int64(41), view.TotalItems)
	require.Equal(t, 3, view.TotalPages)
}

package mapper

import (
	"fmt"
	"time"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
)

// DateOnly marshals calendar dates as YYYY-MM-DD on the wire.
type DateOnly struct {
	time.Time
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	parsed, err := time.Parse(`"`+time.DateOnly+`"`, string(data))
	if err != nil {
		return fmt.Errorf("date must use the YYYY-MM-DD format")
	}
	d.Time = parsed
	return nil
}

// AnimalRequest captures inbound payloads for create and full-update flows
// while preserving field presence.
type AnimalRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Category    *string   `json:"category"`
	BirthDate   *DateOnly `json:"birthDate"`
	Status      *string   `json:"status"`
}

// StatusRequest carries the body of the dedicated status-transition endpoint.
type StatusRequest struct {
	Status *string `json:"status"`
}

// AnimalView is the read representation exposed over HTTP. It always carries
// the record id and the derived age alongside the stored fields.
type AnimalView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category"`
	BirthDate   DateOnly  `json:"birthDate"`
	Age         int       `json:"age"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// AnimalPage is the paged collection shape for list reads.
type AnimalPage struct {
	Items      []AnimalView `json:"items"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	TotalItems int64        `json:"totalItems"`
	TotalPages int          `json:"totalPages"`
}

// ToMutationInput maps a transport payload into the application input,
// decoding the status token. An unknown token is a decode failure, reported
// before validation ever runs.
func ToMutationInput(payload AnimalRequest) (types.AnimalMutationInput, error) {
	input := types.AnimalMutationInput{}
	if payload.Name != nil {
		input.Name = *payload.Name
	}
	if payload.Description != nil {
		input.Description = *payload.Description
	}
	if payload.ImageURL != nil {
		input.ImageURL = *payload.ImageURL
	}
	if payload.Category != nil {
		input.Category = *payload.Category
	}
	if payload.BirthDate != nil {
		birth := payload.BirthDate.Time
		input.BirthDate = &birth
	}
	if payload.Status != nil {
		status, err := domain.ParseStatus(*payload.Status)
		if err != nil {
			return types.AnimalMutationInput{}, err
		}
		input.Status = &status
	}
	return input, nil
}

// FromProjection maps a persisted aggregate into the HTTP view, computing the
// age at call time.
func FromProjection(p *types.AnimalProjection) AnimalView {
	return fromProjectionAt(p, time.Now())
}

func fromProjectionAt(p *types.AnimalProjection, now time.Time) AnimalView {
	animal := p.Entity
	return AnimalView{
		ID:          animal.ID,
		Name:        animal.Name,
		Description: animal.Description,
		ImageURL:    animal.ImageURL,
		Category:    animal.Category,
		BirthDate:   DateOnly{animal.BirthDate},
		Age:         animal.AgeAt(now),
		Status:      string(animal.Status),
		CreatedAt:   p.Metadata.CreatedAt,
		UpdatedAt:   p.Metadata.UpdatedAt,
	}
}

// FromPage maps one page of projections into the paged HTTP shape.
func FromPage(page *types.AnimalPage) AnimalPage {
	now := time.Now()
	result := AnimalPage{
		Items:      make([]AnimalView, 0, len(page.Items)),
		Page:       page.Number,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages(),
	}
	for _, item := range page.Items {
		result.Items = append(result.Items, fromProjectionAt(item, now))
	}
	return result
}

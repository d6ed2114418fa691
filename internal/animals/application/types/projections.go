package types

import (
	"time"

	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/shared/projection"
)

// AnimalProjection transports a domain aggregate together with its persistence metadata.
type AnimalProjection = projection.Projection[*domain.Animal]

// AnimalPage transports one page of aggregates plus paging totals.
type AnimalPage = projection.Page[*domain.Animal]

// NewAnimalProjection wraps an aggregate with persistence metadata.
func NewAnimalProjection(animal *domain.Animal, createdAt, updatedAt time.Time) *AnimalProjection {
	if animal == nil {
		return nil
	}
	return projection.New(animal, createdAt, updatedAt)
}

package ports

import (
	"context"
	"errors"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
)

var ErrNotFound = errors.New("animal not found")

// Repository is the outbound persistence port for the adoption records.
//
// Create assigns a fresh id and initializes both audit timestamps; Update
// leaves id and CreatedAt untouched and refreshes UpdatedAt. Concurrent
// writes to the same id are last-write-wins; no version check is performed.
type Repository interface {
	Create(ctx context.Context, animal *domain.Animal) (*types.AnimalProjection, error)
	GetByID(ctx context.Context, id int64) (*types.AnimalProjection, error)
	List(ctx context.Context, query types.ListQuery) (*types.AnimalPage, error)
	Update(ctx context.Context, animal *domain.Animal) (*types.AnimalProjection, error)
	Delete(ctx context.Context, id int64) error
}

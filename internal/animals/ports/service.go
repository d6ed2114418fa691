package ports

import (
	"context"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
)

// Service defines the adoption use cases exposed to adapters (inbound/driving port).
type Service interface {
	Create(ctx context.Context, input types.CreateAnimalInput) (*types.AnimalProjection, error)
	GetByID(ctx context.Context, input types.AnimalIdentifier) (*types.AnimalProjection, error)
	List(ctx context.Context, input types.ListAnimalsInput) (*types.AnimalPage, error)
	Update(ctx context.Context, input types.UpdateAnimalInput) (*types.AnimalProjection, error)
	Delete(ctx context.Context, input types.AnimalIdentifier) error
	UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*types.AnimalProjection, error)
}

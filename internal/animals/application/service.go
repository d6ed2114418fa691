package application

import (
	"context"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/animals/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service orchestrates the adoption bounded context use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
}

// Option customizes the service wiring.
type Option func(*Service)

// WithIdempotencyStore enables replay-safe creates keyed by Idempotency-Key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the adoption service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create validates the payload and persists a new adoption record. The store
// assigns the id and both audit timestamps; a failed validation aborts the
// write with no state change.
func (s *Service) Create(ctx context.Context, input types.CreateAnimalInput) (*types.AnimalProjection, error) {
	if err := ValidateMutation(input.AnimalMutationInput); err != nil {
		return nil, err
	}
	if input.IdempotencyKey != "" && s.idempotency != nil {
		return s.createIdempotent(ctx, input)
	}
	saved, err := s.repo.Create(ctx, buildAnimal(input.AnimalMutationInput))
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func (s *Service) createIdempotent(ctx context.Context, input types.CreateAnimalInput) (*types.AnimalProjection, error) {
	hash, err := FingerprintCreate(input.AnimalMutationInput)
	if err != nil {
		return nil, err
	}
	if existing, err := s.idempotency.Get(ctx, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		if existing.RequestHash != hash {
			return nil, ports.ErrIdempotencyConflict
		}
		replay, err := s.repo.GetByID(ctx, existing.AnimalID)
		if err != nil {
			return nil, mapError(err)
		}
		return replay, nil
	}
	saved, err := s.repo.Create(ctx, buildAnimal(input.AnimalMutationInput))
	if err != nil {
		return nil, mapError(err)
	}
	record := ports.IdempotencyRecord{
		Key:         input.IdempotencyKey,
		RequestHash: hash,
		AnimalID:    saved.Entity.ID,
	}
	if _, err := s.idempotency.Save(ctx, record); err != nil {
		return nil, err
	}
	return saved, nil
}

// GetByID loads a single adoption record.
func (s *Service) GetByID(ctx context.Context, input types.AnimalIdentifier) (*types.AnimalProjection, error) {
	result, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// List returns one page of records ordered by id unless a sort key is given.
func (s *Service) List(ctx context.Context, input types.ListAnimalsInput) (*types.AnimalPage, error) {
	query := input.Query
	if query.Page < 0 {
		query.Page = 0
	}
	if query.Size <= 0 {
		query.Size = defaultPageSize
	}
	if query.Size > maxPageSize {
		query.Size = maxPageSize
	}
	if query.Sort == "" {
		query.Sort = types.SortByID
	}
	result, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

// Update validates the payload and replaces the mutable state of an existing
// record, refreshing its UpdatedAt timestamp.
func (s *Service) Update(ctx context.Context, input types.UpdateAnimalInput) (*types.AnimalProjection, error) {
	if err := ValidateMutation(input.AnimalMutationInput); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	animal := existing.Entity
	if err := applyMutation(animal, input.AnimalMutationInput); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, animal)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Delete removes a record permanently. There is no soft delete.
func (s *Service) Delete(ctx context.Context, input types.AnimalIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		return mapError(err)
	}
	return nil
}

// UpdateStatus moves an existing record to another adoption status. This is
// the only operation that mutates status without touching other fields; it
// skips field-level validation because the stored record is already valid.
func (s *Service) UpdateStatus(ctx context.Context, input types.UpdateStatusInput) (*types.AnimalProjection, error) {
	existing, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	animal := existing.Entity
	if err := animal.UpdateStatus(input.Status); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Update(ctx, animal)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

func buildAnimal(input types.AnimalMutationInput) *domain.Animal {
	animal := &domain.Animal{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	}
	if input.BirthDate != nil {
		animal.BirthDate = *input.BirthDate
	}
	if input.Status != nil {
		animal.Status = *input.Status
	}
	return animal
}

func applyMutation(target *domain.Animal, input types.AnimalMutationInput) error {
	if err := target.Rename(input.Name); err != nil {
		return err
	}
	if err := target.Recategorize(input.Category); err != nil {
		return err
	}
	target.Description = input.Description
	target.ImageURL = input.ImageURL
	if input.BirthDate != nil {
		target.BirthDate = *input.BirthDate
	}
	if input.Status != nil {
		if err := target.UpdateStatus(*input.Status); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)

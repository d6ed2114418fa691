package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/animals/ports"
)

var _ ports.Repository = (*Repository)(nil)

type storedAnimal struct {
	animal    domain.Animal
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory adoption record store for development and tests.
type Repository struct {
	mu      sync.RWMutex
	animals map[int64]*storedAnimal
	nextID  int64
	now     func() time.Time
}

// NewRepository constructs an empty in-memory repository.
func NewRepository() *Repository {
	return &Repository{
		animals: map[int64]*storedAnimal{},
		now:     time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Seed inserts a record under its existing id, bypassing id assignment.
// Intended for tests that need deterministic identifiers.
func (r *Repository) Seed(animal *domain.Animal, createdAt, updatedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *animal
	r.animals[clone.ID] = &storedAnimal{animal: clone, createdAt: createdAt, updatedAt: updatedAt}
	if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
}

// Create assigns a fresh id, initializes both timestamps, and stores a copy.
func (r *Repository) Create(_ context.Context, animal *domain.Animal) (*types.AnimalProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	clone := *animal
	clone.ID = r.nextID
	now := r.now()
	r.animals[clone.ID] = &storedAnimal{animal: clone, createdAt: now, updatedAt: now}
	return types.NewAnimalProjection(clone.Clone(), now, now), nil
}

// GetByID returns a copy of the stored record or ErrNotFound.
func (r *Repository) GetByID(_ context.Context, id int64) (*types.AnimalProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.animals[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return types.NewAnimalProjection(stored.animal.Clone(), stored.createdAt, stored.updatedAt), nil
}

// List returns one page, filtered by status when requested and ordered by the
// sort key (id by default).
func (r *Repository) List(_ context.Context, query types.ListQuery) (*types.AnimalPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*storedAnimal, 0, len(r.animals))
	for _, stored := range r.animals {
		if query.Status != nil && stored.animal.Status != *query.Status {
			continue
		}
		matched = append(matched, stored)
	}
	sortStored(matched, query.Sort, query.Descending)

	page := &types.AnimalPage{
		Number:     query.Page,
		Size:       query.Size,
		TotalItems: int64(len(matched)),
	}
	start := query.Page * query.Size
	if start >= len(matched) {
		return page, nil
	}
	end := start + query.Size
	if end > len(matched) {
		end = len(matched)
	}
	for _, stored := range matched[start:end] {
		page.Items = append(page.Items, types.NewAnimalProjection(stored.animal.Clone(), stored.createdAt, stored.updatedAt))
	}
	return page, nil
}

// Update replaces the stored aggregate, keeping CreatedAt and refreshing
// UpdatedAt. Last write wins on concurrent updates to the same id.
func (r *Repository) Update(_ context.Context, animal *domain.Animal) (*types.AnimalProjection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.animals[animal.ID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	stored.animal = *animal
	stored.updatedAt = r.now()
	return types.NewAnimalProjection(stored.animal.Clone(), stored.createdAt, stored.updatedAt), nil
}

// Delete removes the record permanently.
func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animals[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.animals, id)
	return nil
}

func sortStored(items []*storedAnimal, key types.SortKey, descending bool) {
	less := func(a, b *storedAnimal) bool { return a.animal.ID < b.animal.ID }
	switch key {
	case types.SortByName:
		less = func(a, b *storedAnimal) bool { return a.animal.Name < b.animal.Name }
	case types.SortByCategory:
		less = func(a, b *storedAnimal) bool { return a.animal.Category < b.animal.Category }
	case types.SortByBirthDate:
		less = func(a, b *storedAnimal) bool { return a.animal.BirthDate.Before(b.animal.BirthDate) }
	case types.SortByCreatedAt:
		less = func(a, b *storedAnimal) bool { return a.createdAt.Before(b.createdAt) }
	case types.SortByUpdatedAt:
		less = func(a, b *storedAnimal) bool { return a.updatedAt.Before(b.updatedAt) }
	}
	sort.SliceStable(items, func(i, j int) bool {
		if descending {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

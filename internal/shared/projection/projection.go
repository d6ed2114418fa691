package projection

import "time"

// Metadata captures persistence timestamps shared by projections.
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Projection represents an aggregate view plus persistence metadata.
type Projection[T any] struct {
	Entity   T
	Metadata Metadata
}

// New wraps an aggregate with its persistence metadata.
func New[T any](entity T, createdAt, updatedAt time.Time) *Projection[T] {
	return &Projection[T]{
		Entity: entity,
		Metadata: Metadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}

// Page carries one page of projections plus the totals needed by clients.
type Page[T any] struct {
	Items      []*Projection[T]
	Number     int
	Size       int
	TotalItems int64
}

// TotalPages derives the page count from the total item count.
func (p *Page[T]) TotalPages() int {
	if p == nil || p.Size <= 0 {
		return 0
	}
	pages := p.TotalItems / int64(p.Size)
	if p.TotalItems%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

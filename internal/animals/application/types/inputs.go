package types

import (
	"time"

	"github.com/shelterops/adoption-api/internal/animals/domain"
)

// AnimalMutationInput carries the writable fields for create and full-update
// flows. Pointer fields distinguish "absent" from a zero value so the
// validation layer can report missing fields precisely.
type AnimalMutationInput struct {
	Name        string `validate:"notblank"`
	Description string
	ImageURL    string
	Category    string         `validate:"notblank"`
	BirthDate   *time.Time     `validate:"required,pastdate"`
	Status      *domain.Status `validate:"required"`
}

// CreateAnimalInput requests a new adoption record. IdempotencyKey is
// optional; when set, retried creates replay the original result.
type CreateAnimalInput struct {
	AnimalMutationInput
	IdempotencyKey string
}

// UpdateAnimalInput replaces the mutable state of an existing record.
type UpdateAnimalInput struct {
	ID int64
	AnimalMutationInput
}

// UpdateStatusInput moves a record to another adoption status without
// touching any other field.
type UpdateStatusInput struct {
	ID     int64
	Status domain.Status
}

// AnimalIdentifier addresses a single record.
type AnimalIdentifier struct {
	ID int64
}

// ListAnimalsInput selects one page of records.
type ListAnimalsInput struct {
	Query ListQuery
}

// ListQuery narrows and orders a paged read. Page numbers are zero-based.
type ListQuery struct {
	Page       int
	Size       int
	Sort       SortKey
	Descending bool
	Status     *domain.Status
}

// SortKey names a sortable animal attribute.
type SortKey string

const (
	SortByID        SortKey = "id"
	SortByName      SortKey = "name"
	SortByCategory  SortKey = "category"
	SortByBirthDate SortKey = "birthDate"
	SortByCreatedAt SortKey = "createdAt"
	SortByUpdatedAt SortKey = "updatedAt"
)

// ParseSortKey validates a sort token from the query string.
func ParseSortKey(token string) (SortKey, bool) {
	switch SortKey(token) {
	case SortByID, SortByName, SortByCategory, SortByBirthDate, SortByCreatedAt, SortByUpdatedAt:
		return SortKey(token), true
	}
	return "", false
}

package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shelterops/adoption-api/internal/animals/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid animal input")

// FieldErrors maps an input field to a human-readable violation message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, message := range f {
		parts = append(parts, field+": "+message)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

// ValidationError carries every collected field violation for a rejected write.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %v", ErrInvalidInput, e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyCategory) ||
		errors.Is(err, domain.ErrUnknownStatus) ||
		errors.Is(err, domain.ErrFutureBirthDate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

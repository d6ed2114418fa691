package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents the adoption lifecycle state of an animal.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusAdopted   Status = "ADOPTED"
)

var (
	ErrEmptyName       = errors.New("animal name is required")
	ErrEmptyCategory   = errors.New("animal category is required")
	ErrUnknownStatus   = errors.New("unknown adoption status")
	ErrFutureBirthDate = errors.New("birth date cannot be in the future")
)

// ParseStatus decodes a wire token into a Status. Tokens outside the
// enumeration are rejected so HTTP boundaries never persist a third state.
func ParseStatus(token string) (Status, error) {
	switch Status(token) {
	case StatusAvailable:
		return StatusAvailable, nil
	case StatusAdopted:
		return StatusAdopted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, token)
}

// Statuses lists every valid adoption status token.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusAdopted}
}

// Animal represents the aggregate managed by the adoption bounded context.
type Animal struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
	Category    string
	BirthDate   time.Time
	Status      Status
}

// Rename mutates the animal name ensuring it stays non-blank.
func (a *Animal) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	a.Name = name
	return nil
}

// Recategorize mutates the category ensuring it stays non-blank.
func (a *Animal) Recategorize(category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}
	a.Category = category
	return nil
}

// UpdateStatus moves the animal to another lifecycle state. Both directions
// are legal; there is no transition graph beyond the two-value enumeration.
func (a *Animal) UpdateStatus(status Status) error {
	switch status {
	case StatusAvailable, StatusAdopted:
		a.Status = status
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
}

// AgeAt computes the whole years elapsed between the birth date and now,
// floored. Animals born later in the calendar year have not aged yet.
func (a *Animal) AgeAt(now time.Time) int {
	birth := a.BirthDate
	years := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Clone returns a defensive copy of the aggregate.
func (a *Animal) Clone() *Animal {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

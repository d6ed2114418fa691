package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
)

type normalizedCreateInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
	BirthDate   *string `json:"birthDate"`
	Status      *string `json:"status"`
}

// FingerprintCreate builds a deterministic hash of the create payload
// (excluding the idempotency key) so replays with a different body can be
// told apart from genuine retries.
func FingerprintCreate(input types.AnimalMutationInput) (string, error) {
	normalized := normalizedCreateInput{
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
	}
	if input.BirthDate != nil {
		date := input.BirthDate.Format(time.DateOnly)
		normalized.BirthDate = &date
	}
	if input.Status != nil {
		status := string(*input.Status)
		normalized.Status = &status
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

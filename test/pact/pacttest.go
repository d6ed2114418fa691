//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "adoption-api"
	ConsumerName = "adoption-portal"

	StateAnimalsBaseline = "animals baseline"
	StateAnimalExists    = "animal with id 101 exists"
	StateAnimalMissing   = "no animal with id 404"
)

const (
	ExistingAnimalID int64 = 101
	MissingAnimalID  int64 = 404
)

const (
	ExampleAnimalName     = "Luna Pact Dog"
	ExampleAnimalCategory = "dog"
	ExampleBirthDate      = "2020-01-01"
	ExampleImageURL       = "https://example.pact/animals/luna.png"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the adoption portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleAnimalPayload provides stable test data for pact interactions.
func ExampleAnimalPayload() map[string]any {
	return map[string]any{
		"name":      ExampleAnimalName,
		"category":  ExampleAnimalCategory,
		"imageUrl":  ExampleImageURL,
		"birthDate": ExampleBirthDate,
		"status":    "AVAILABLE",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

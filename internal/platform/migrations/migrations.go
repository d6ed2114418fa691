package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the adoption bounded context. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&animalRecord{},
		&idempotencyRecord{},
	)
}

// Animal schema mirrors the animals Postgres adapter.
type animalRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	ImageURL    string    `gorm:"column:image_url"`
	Category    string    `gorm:"column:category"`
	BirthDate   time.Time `gorm:"column:birth_date;type:date"`
	Status      string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (animalRecord) TableName() string { return "animals" }

// Idempotency key schema mirrors the animals idempotency store.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	AnimalID    int64     `gorm:"column:animal_id"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "animal_idempotency_keys" }

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/animals/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists adoption records in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type animalRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
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

// sortColumns whitelists the ORDER BY targets reachable from a list query.
var sortColumns = map[types.SortKey]string{
	types.SortByID:        "id",
	types.SortByName:      "name",
	types.SortByCategory:  "category",
	types.SortByBirthDate: "birth_date",
	types.SortByCreatedAt: "created_at",
	types.SortByUpdatedAt: "updated_at",
}

// Create inserts a new record; the database assigns id and timestamps.
func (r *Repository) Create(ctx context.Context, animal *domain.Animal) (*types.AnimalProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(animal)
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toProjection(), nil
}

// GetByID fetches a record by id.
func (r *Repository) GetByID(ctx context.Context, id int64) (*types.AnimalProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record animalRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// List returns one page ordered by the whitelisted sort column.
func (r *Repository) List(ctx context.Context, query types.ListQuery) (*types.AnimalPage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	column, ok := sortColumns[query.Sort]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}

	tx := r.db.WithContext(ctx).Model(&animalRecord{})
	if query.Status != nil {
		tx = tx.Where("status = ?", string(*query.Status))
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, err
	}
	var records []animalRecord
	if err := tx.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Offset(query.Page * query.Size).
		Limit(query.Size).
		Find(&records).Error; err != nil {
		return nil, err
	}

	page := &types.AnimalPage{
		Number:     query.Page,
		Size:       query.Size,
		TotalItems: total,
	}
	for i := range records {
		page.Items = append(page.Items, records[i].toProjection())
	}
	return page, nil
}

// Update rewrites the mutable columns of an existing row, refreshing
// updated_at while leaving id and created_at untouched.
func (r *Repository) Update(ctx context.Context, animal *domain.Animal) (*types.AnimalProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).
		Model(&animalRecord{}).
		Where("id = ?", animal.ID).
		Updates(map[string]any{
			"name":        animal.Name,
			"description": animal.Description,
			"image_url":   animal.ImageURL,
			"category":    animal.Category,
			"birth_date":  animal.BirthDate,
			"status":      string(animal.Status),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, animal.ID)
}

// Delete removes a row by id.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&animalRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres animal repository not configured")
	}
	return nil
}

func toRecord(animal *domain.Animal) animalRecord {
	return animalRecord{
		ID:          animal.ID,
		Name:        animal.Name,
		Description: animal.Description,
		ImageURL:    animal.ImageURL,
		Category:    animal.Category,
		BirthDate:   animal.BirthDate,
		Status:      string(animal.Status),
	}
}

func (r *animalRecord) toProjection() *types.AnimalProjection {
	animal := &domain.Animal{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		BirthDate:   r.BirthDate,
		Status:      domain.Status(r.Status),
	}
	return types.NewAnimalProjection(animal, r.CreatedAt, r.UpdatedAt)
}

package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shelterops/adoption-api/internal/animals/adapters/http/mapper"
	"github.com/shelterops/adoption-api/internal/animals/application/types"
	"github.com/shelterops/adoption-api/internal/animals/domain"
	"github.com/shelterops/adoption-api/internal/animals/ports"
)

// idempotencyKeyHeader lets clients retry creates without duplicating records.
const idempotencyKeyHeader = "Idempotency-Key"

// AnimalAPI wires HTTP transport with the adoption bounded context service.
type AnimalAPI struct {
	service ports.Service
}

// NewAnimalAPI creates an AnimalAPI backed by the provided service.
func NewAnimalAPI(service ports.Service) AnimalAPI {
	return AnimalAPI{service: service}
}

// Post /animals
// Register a new animal for adoption
func (api *AnimalAPI) CreateAnimal(c *gin.Context) {
	var payload mapper.AnimalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMalformedBody(c)
		return
	}
	input, err := mapper.ToMutationInput(payload)
	if err != nil {
		respondUnknownStatus(c)
		return
	}
	created, err := api.service.Create(c.Request.Context(), types.CreateAnimalInput{
		AnimalMutationInput: input,
		IdempotencyKey:      c.GetHeader(idempotencyKeyHeader),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapper.FromProjection(created))
}

// Get /animals
// List animals one page at a time
func (api *AnimalAPI) ListAnimals(c *gin.Context) {
	query, ok := parseListQuery(c)
	if !ok {
		return
	}
	result, err := api.service.List(c.Request.Context(), types.ListAnimalsInput{Query: query})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromPage(result))
}

// Get /animals/:animalId
// Find animal by ID
func (api *AnimalAPI) GetAnimal(c *gin.Context) {
	id, ok := parseIDParam(c, "animalId")
	if !ok {
		return
	}
	animal, err := api.service.GetByID(c.Request.Context(), types.AnimalIdentifier{ID: id})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromProjection(animal))
}

// Put /animals/:animalId
// Patch /animals/:animalId
// Replace an existing animal
func (api *AnimalAPI) UpdateAnimal(c *gin.Context) {
	id, ok := parseIDParam(c, "animalId")
	if !ok {
		return
	}
	var payload mapper.AnimalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMalformedBody(c)
		return
	}
	input, err := mapper.ToMutationInput(payload)
	if err != nil {
		respondUnknownStatus(c)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), types.UpdateAnimalInput{
		ID:                  id,
		AnimalMutationInput: input,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromProjection(updated))
}

// Delete /animals/:animalId
// Remove an animal permanently
func (api *AnimalAPI) DeleteAnimal(c *gin.Context) {
	id, ok := parseIDParam(c, "animalId")
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), types.AnimalIdentifier{ID: id}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Patch /animals/:animalId/status
// Move an animal between AVAILABLE and ADOPTED
func (api *AnimalAPI) UpdateAnimalStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "animalId")
	if !ok {
		return
	}
	var payload mapper.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondMalformedBody(c)
		return
	}
	if payload.Status == nil {
		respondValidationFailed(c, map[string]string{"status": "Status is mandatory"})
		return
	}
	status, err := domain.ParseStatus(*payload.Status)
	if err != nil {
		respondUnknownStatus(c)
		return
	}
	updated, err := api.service.UpdateStatus(c.Request.Context(), types.UpdateStatusInput{ID: id, Status: status})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.FromProjection(updated))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondBadRequest(c, "animal id must be an integer")
		return 0, false
	}
	return id, true
}

func parseListQuery(c *gin.Context) (types.ListQuery, bool) {
	var query types.ListQuery
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			respondBadRequest(c, "page must be a non-negative integer")
			return query, false
		}
		query.Page = page
	}
	if raw := c.Query("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			respondBadRequest(c, "size must be a positive integer")
			return query, false
		}
		query.Size = size
	}
	if raw := c.Query("sort"); raw != "" {
		sort, ok := types.ParseSortKey(raw)
		if !ok {
			respondBadRequest(c, "sort must be one of: id, name, category, birthDate, createdAt, updatedAt")
			return query, false
		}
		query.Sort = sort
	}
	switch c.Query("order") {
	case "", "asc":
	case "desc":
		query.Descending = true
	default:
		respondBadRequest(c, "order must be asc or desc")
		return query, false
	}
	if raw := c.Query("status"); raw != "" {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			respondUnknownStatus(c)
			return query, false
		}
		query.Status = &status
	}
	return query, true
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route binds one HTTP operation to its handler.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc gin.HandlerFunc
}

// APIHandlers collects the handler sets mounted on the router.
type APIHandlers struct {
	AnimalAPI AnimalAPI
}

// getRoutes is the explicit route table for the adoption API.
func getRoutes(handlers APIHandlers) []Route {
	return []Route{
		{
			"CreateAnimal",
			http.MethodPost,
			"/animals",
			handlers.AnimalAPI.CreateAnimal,
		},
		{
			"ListAnimals",
			http.MethodGet,
			"/animals",
			handlers.AnimalAPI.ListAnimals,
		},
		{
			"GetAnimal",
			http.MethodGet,
			"/animals/:animalId",
			handlers.AnimalAPI.GetAnimal,
		},
		{
			"ReplaceAnimal",
			http.MethodPut,
			"/animals/:animalId",
			handlers.AnimalAPI.UpdateAnimal,
		},
		{
			"PatchAnimal",
			http.MethodPatch,
			"/animals/:animalId",
			handlers.AnimalAPI.UpdateAnimal,
		},
		{
			"DeleteAnimal",
			http.MethodDelete,
			"/animals/:animalId",
			handlers.AnimalAPI.DeleteAnimal,
		},
		{
			"UpdateAnimalStatus",
			http.MethodPatch,
			"/animals/:animalId/status",
			handlers.AnimalAPI.UpdateAnimalStatus,
		},
		{
			"Health",
			http.MethodGet,
			"/health",
			healthCheck,
		},
	}
}

// NewRouter returns a new router with default gin middleware.
func NewRouter(handlers APIHandlers) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handlers)
}

// NewRouterWithGinEngine mounts the route table on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handlers APIHandlers) *gin.Engine {
	for _, route := range getRoutes(handlers) {
		if route.HandlerFunc == nil {
			continue
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	animalmemory "github.com/shelterops/adoption-api/internal/animals/adapters/memory"
	"github.com/shelterops/adoption-api/internal/animals/application"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := application.NewService(
		animalmemory.NewRepository(),
		application.WithIdempotencyStore(animalmemory.NewIdempotencyStore()),
	)
	handlers := APIHandlers{AnimalAPI: NewAnimalAPI(service)}
	return NewRouterWithGinEngine(gin.New(), handlers)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

const lunaPayload = `{
	"name": "Luna",
	"description": "calm and friendly",
	"imageUrl": "https://example.org/luna.jpg",
	"category": "dog",
	"birthDate": "2020-01-01",
	"status": "AVAILABLE"
}`

func TestCreateAnimal_Returns201WithDerivedAge(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
	require.Equal(t, http.StatusCreated, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, float64(1), body["id"])
	require.Equal(t, "Luna", body["name"])
	require.Equal(t, "2020-01-01", body["birthDate"])
	require.Equal(t, "AVAILABLE", body["status"])
	require.NotEmpty(t, body["createdAt"])
	require.NotEmpty(t, body["updatedAt"])
	require.GreaterOrEqual(t, body["age"], float64(4))
}

func TestCreateAnimal_ValidationErrorsAreCollected(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodPost, "/animals", `{"description": "no name"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, "application/problem+json", resp.Header().Get("Content-Type"))

	body := decodeBody(t, resp)
	require.Equal(t, "/problems/validation-error", body["type"])
	require.Equal(t, "/animals", body["instance"])

	extensions, ok := body["extensions"].(map[string]any)
	require.True(t, ok)
	fields, ok := extensions["fields"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Name is mandatory", fields["name"])
	require.Equal(t, "Category is mandatory", fields["category"])
	require.Equal(t, "Birth Date is mandatory", fields["birthDate"])
	require.Equal(t, "Status is mandatory", fields["status"])
}

func TestCreateAnimal_MalformedJSONIsSanitized(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodPost, "/animals", `{"name": "Luna",`, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, "/problems/bad-request", body["type"])
	require.NotContains(t, body["detail"], "unexpected")
	require.NotContains(t, body["detail"], "EOF")
}

func TestCreateAnimal_UnknownStatusToken(t *testing.T) {
	router := newTestRouter()

	payload := `{"name": "Luna", "category": "dog", "birthDate": "2020-01-01", "status": "PENDING"}`
	resp := doJSON(t, router, http.MethodPost, "/animals", payload, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, "/problems/bad-request", body["type"])
	require.Contains(t, body["detail"], "AVAILABLE")
	require.Contains(t, body["detail"], "ADOPTED")
	require.NotContains(t, body["detail"], "PENDING")
}

func TestCreateAnimal_IdempotencyKeyReplayAndConflict(t *testing.T) {
	router := newTestRouter()
	headers := map[string]string{"Idempotency-Key": "retry-7"}

	first := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, headers)
	require.Equal(t, http.StatusCreated, first.Code)
	second := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, headers)
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, decodeBody(t, first)["id"], decodeBody(t, second)["id"])

	conflicting := `{"name": "Rex", "category": "dog", "birthDate": "2021-02-02", "status": "AVAILABLE"}`
	third := doJSON(t, router, http.MethodPost, "/animals", conflicting, headers)
	require.Equal(t, http.StatusConflict, third.Code)
	require.Equal(t, "/problems/conflict", decodeBody(t, third)["type"])
}

func TestGetAnimal_MissingReturnsProblem(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodGet, "/animals/12345", "", nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Equal(t, "application/problem+json", resp.Header().Get("Content-Type"))

	body := decodeBody(t, resp)
	require.Equal(t, "/problems/not-found", body["type"])
	require.Equal(t, "/animals/12345", body["instance"])
	require.NotContains(t, body, "detail")
}

func TestGetAnimal_NonNumericID(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodGet, "/animals/abc", "", nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUpdateAnimal_ReplacesRecord(t *testing.T) {
	router := newTestRouter()
	created := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["id"]

	payload := `{"name": "Nina", "category": "dog", "birthDate": "2020-01-01", "status": "AVAILABLE"}`
	resp := doJSON(t, router, http.MethodPut, fmt.Sprintf("/animals/%v", id), payload, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodeBody(t, resp)
	require.Equal(t, "Nina", body["name"])
	require.Equal(t, id, body["id"])
	require.Nil(t, body["description"])
}

func TestUpdateAnimal_Missing(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodPut, "/animals/9999", lunaPayload, nil)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateAnimalStatus_TogglesStatus(t *testing.T) {
	router := newTestRouter()
	created := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["id"]

	resp := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/animals/%v/status", id), `{"status": "ADOPTED"}`, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, "ADOPTED", body["status"])
	require.Equal(t, "Luna", body["name"])
}

func TestUpdateAnimalStatus_UnknownTokenLeavesRecordUnchanged(t *testing.T) {
	router := newTestRouter()
	created := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["id"]

	resp := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/animals/%v/status", id), `{"status": "LOST"}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.NotContains(t, decodeBody(t, resp)["detail"], "LOST")

	loaded := doJSON(t, router, http.MethodGet, fmt.Sprintf("/animals/%v", id), "", nil)
	require.Equal(t, http.StatusOK, loaded.Code)
	require.Equal(t, "AVAILABLE", decodeBody(t, loaded)["status"])
}

func TestUpdateAnimalStatus_MissingStatusField(t *testing.T) {
	router := newTestRouter()
	created := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
	id := decodeBody(t, created)["id"]

	resp := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/animals/%v/status", id), `{}`, nil)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	extensions, ok := decodeBody(t, resp)["extensions"].(map[string]any)
	require.True(t, ok)
	fields, ok := extensions["fields"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Status is mandatory", fields["status"])
}

func TestDeleteAnimal_ThenGetReturns404(t *testing.T) {
	router := newTestRouter()
	created := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
	id := decodeBody(t, created)["id"]

	resp := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/animals/%v", id), "", nil)
	require.Equal(t, http.StatusNoContent, resp.Code)
	require.Empty(t, resp.Body.Bytes())

	loaded := doJSON(t, router, http.MethodGet, fmt.Sprintf("/animals/%v", id), "", nil)
	require.Equal(t, http.StatusNotFound, loaded.Code)

	again := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/animals/%v", id), "", nil)
	require.Equal(t, http.StatusNotFound, again.Code)
}

func TestListAnimals_PagingAndFilter(t *testing.T) {
	router := newTestRouter()
	for i := 0; i < 3; i++ {
		resp := doJSON(t, router, http.MethodPost, "/animals", lunaPayload, nil)
		require.Equal(t, http.StatusCreated, resp.Code)
	}
	adopt := doJSON(t, router, http.MethodPatch, "/animals/2/status", `{"status": "ADOPTED"}`, nil)
	require.Equal(t, http.StatusOK, adopt.Code)

	resp := doJSON(t, router, http.MethodGet, "/animals?page=0&size=2", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body := decodeBody(t, resp)
	require.Equal(t, float64(3), body["totalItems"])
	require.Equal(t, float64(2), body["totalPages"])
	require.Len(t, body["items"], 2)

	resp = doJSON(t, router, http.MethodGet, "/animals?status=ADOPTED", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	body = decodeBody(t, resp)
	require.Equal(t, float64(1), body["totalItems"])
	items := body["items"].([]any)
	require.Equal(t, float64(2), items[0].(map[string]any)["id"])
}

func TestListAnimals_RejectsBadQueryParams(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{
		"/animals?page=-1",
		"/animals?size=0",
		"/animals?size=abc",
		"/animals?sort=height",
		"/animals?order=upwards",
		"/animals?status=LOST",
	} {
		resp := doJSON(t, router, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusBadRequest, resp.Code, "path %s", path)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	resp := doJSON(t, router, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "ok", decodeBody(t, resp)["status"])
}

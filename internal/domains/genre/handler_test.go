package genre

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booker-backend/internal/shared/criteria"
	"booker-backend/internal/shared/response"
)

type stubService struct {
	genres   map[int64]*Genre
	nextID   int64
	lastCrit *Criteria
	lastPage criteria.Pageable
}

func newStubService(seed ...*Genre) *stubService {
	s := &stubService{genres: make(map[int64]*Genre), nextID: 1}
	for _, g := range seed {
		s.genres[g.ID] = g
		if g.ID >= s.nextID {
			s.nextID = g.ID + 1
		}
	}
	return s
}

func (s *stubService) Create(_ context.Context, req *Request) (*Genre, error) {
	g := req.ToEntity()
	g.ID = s.nextID
	s.nextID++
	s.genres[g.ID] = g
	return g, nil
}

func (s *stubService) Get(_ context.Context, id int64) (*Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

func (s *stubService) List(_ context.Context, crit *Criteria, page criteria.Pageable) ([]Genre, int64, error) {
	s.lastCrit = crit
	s.lastPage = page
	var out []Genre
	for _, g := range s.genres {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (s *stubService) Count(_ context.Context, crit *Criteria) (int64, error) {
	s.lastCrit = crit
	return int64(len(s.genres)), nil
}

func (s *stubService) Replace(_ context.Context, id int64, req *Request) (*Genre, error) {
	if _, ok := s.genres[id]; !ok {
		return nil, ErrNotFound
	}
	g := req.ToEntity()
	g.ID = id
	s.genres[id] = g
	return g, nil
}

func (s *stubService) Patch(_ context.Context, id int64, patch *Patch) (*Genre, error) {
	g, ok := s.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	g.Apply(patch)
	return g, nil
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	delete(s.genres, id)
	return nil
}

func setupRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, "method not allowed for this resource")
	})

	rg := router.Group("/api/genres")
	rg.GET("", h.List)
	rg.GET("/count", h.Count)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id", h.PartialUpdate)
	rg.DELETE("/:id", h.Delete)

	return router
}

func perform(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var res response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestCreate(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodPost, "/api/genres", gin.H{
		"name": "Science Fiction",
		"slug": "science-fiction",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	res := decode(t, w)
	assert.True(t, res.Success)
}

func TestCreate_WithIDRejected(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodPost, "/api/genres", gin.H{
		"id":   99,
		"name": "Fantasy",
		"slug": "fantasy",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreate_MissingNameRejected(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodPost, "/api/genres", gin.H{
		"slug": "fantasy",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decode(t, w)
	require.NotNil(t, res.Error)
	assert.Equal(t, "VALIDATION_FAILED", res.Error.Code)
}

func TestGet_NotFound(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodGet, "/api/genres/42", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGet_InvalidID(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodGet, "/api/genres/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_EmptyIsArray(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodGet, "/api/genres", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestList_BadFilterRejected(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodGet, "/api/genres?id.equals=abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_BadSortRejected(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodGet, "/api/genres?sort=nonsense", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList_FilterReachesService(t *testing.T) {
	svc := newStubService()
	router := setupRouter(svc)

	w := perform(router, http.MethodGet, "/api/genres?slug.equals=fantasy&page=2&size=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastCrit)
	require.NotNil(t, svc.lastCrit.Slug.Equals)
	assert.Equal(t, "fantasy", *svc.lastCrit.Slug.Equals)
	assert.Equal(t, 2, svc.lastPage.Page)
	assert.Equal(t, 5, svc.lastPage.Size)
}

func TestCount(t *testing.T) {
	seed := &Genre{ID: 1, Name: "Horror", Slug: "horror"}
	router := setupRouter(newStubService(seed))

	w := perform(router, http.MethodGet, "/api/genres/count", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, float64(1), res.Data)
}

func TestUpdate_MissingBodyIDRejected(t *testing.T) {
	seed := &Genre{ID: 1, Name: "Horror", Slug: "horror"}
	router := setupRouter(newStubService(seed))

	w := perform(router, http.MethodPut, "/api/genres/1", gin.H{
		"name": "Horror",
		"slug": "horror",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_IDMismatchRejected(t *testing.T) {
	seed := &Genre{ID: 1, Name: "Horror", Slug: "horror"}
	router := setupRouter(newStubService(seed))

	w := perform(router, http.MethodPut, "/api/genres/1", gin.H{
		"id":   2,
		"name": "Horror",
		"slug": "horror",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate_NonexistentRejected(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodPut, "/api/genres/7", gin.H{
		"id":   7,
		"name": "Horror",
		"slug": "horror",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	seed := &Genre{ID: 1, Name: "Horror", Slug: "horror"}
	svc := newStubService(seed)
	router := setupRouter(svc)

	w := perform(router, http.MethodPut, "/api/genres/1", gin.H{
		"id":   1,
		"name": "Gothic Horror",
		"slug": "gothic-horror",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gothic Horror", svc.genres[1].Name)
}

func TestPartialUpdate_MergesOnlyProvidedFields(t *testing.T) {
	desc := "scary stories"
	seed := &Genre{ID: 1, Name: "Horror", Slug: "horror", Description: &desc}
	svc := newStubService(seed)
	router := setupRouter(svc)

	w := perform(router, http.MethodPatch, "/api/genres/1", gin.H{
		"id":   1,
		"name": "Psychological Horror",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Psychological Horror", svc.genres[1].Name)
	assert.Equal(t, "horror", svc.genres[1].Slug)
	require.NotNil(t, svc.genres[1].Description)
	assert.Equal(t, "scary stories", *svc.genres[1].Description)
}

func TestDelete_Returns204(t *testing.T) {
	seed := &Genre{ID: 1, Name: "Horror", Slug: "horror"}
	router := setupRouter(newStubService(seed))

	w := perform(router, http.MethodDelete, "/api/genres/1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDelete_NonexistentStill204(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodDelete, "/api/genres/99", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCollectionPathRejectsPut(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodPut, "/api/genres", gin.H{"id": 1})

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCollectionPathRejectsPatch(t *testing.T) {
	router := setupRouter(newStubService())

	w := perform(router, http.MethodPatch, "/api/genres", gin.H{"id": 1})

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

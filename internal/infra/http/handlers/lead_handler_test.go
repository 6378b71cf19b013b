package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newLeadRouter(h *LeadHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/leads", h.HandleList)
	r.Get("/leads/filter", h.HandleFilter)
	r.Post("/leads", h.HandleCreate)
	r.Get("/leads/{id}", h.HandleGet)
	r.Put("/leads/{id}", h.HandleUpdate)
	r.Delete("/leads/{id}", h.HandleDelete)
	return r
}

func TestLeadHandler_List(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)

	lead := entity.NewLead("Bob", "bob@example.com")
	repo.On("List", mock.Anything, entity.LeadFilter{}).Return([]*entity.Lead{lead}, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads", nil)
	rec := httptest.NewRecorder()
	newLeadRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["count"])
}

func TestLeadHandler_FilterPassesQueryParams(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)

	minSalary := 30000.0
	expected := entity.LeadFilter{
		BudgetRange: "medium",
		Category:    "startup",
		Industry:    "fintech",
		MinSalary:   &minSalary,
	}
	repo.On("List", mock.Anything, expected).Return([]*entity.Lead{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/leads/filter?budget_range=medium&category=startup&industry=fintech&min_salary=30000", nil)
	rec := httptest.NewRecorder()
	newLeadRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestLeadHandler_Create(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	payload := `{"name":"Bob","email":"bob@example.com","category":"startup","budget_range":"medium"}`
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	newLeadRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Lead created successfully", body["message"])
}

func TestLeadHandler_CreateRejectsInvalidPayload(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)

	payload := `{"name":"Bob","email":"not-an-email"}`
	req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString(payload))
	rec := httptest.NewRecorder()
	newLeadRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create")
}

func TestLeadHandler_CreateRateLimited(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	router := newLeadRouter(handler)
	payload := `{"name":"Bob","email":"bob@example.com"}`

	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/leads", bytes.NewBufferString(payload))
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestLeadHandler_GetNotFound(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)

	repo.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrLeadNotFound)

	req := httptest.NewRequest(http.MethodGet, "/leads/missing", nil)
	rec := httptest.NewRecorder()
	newLeadRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadHandler_Delete(t *testing.T) {
	repo := new(MockLeadRepository)
	handler := NewLeadHandler(repo)

	repo.On("Delete", mock.Anything, "lead-1").Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/leads/lead-1", nil)
	rec := httptest.NewRecorder()
	newLeadRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

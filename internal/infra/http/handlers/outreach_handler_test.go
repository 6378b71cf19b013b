package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

// MockProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*entity.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id string) (*entity.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Project), args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsernameOrEmail(ctx context.Context, login string) (*entity.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, name, email string) error {
	args := m.Called(ctx, id, name, email)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSMTPSettings(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateGoogleTokens(ctx context.Context, id, accessToken, refreshToken string) error {
	args := m.Called(ctx, id, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockUserRepository) VerifyEmail(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// Happy-path collaborators for the batch run.
type okNotifier struct{}

func (okNotifier) SendProjectInvite(ctx context.Context, user *entity.User, project *entity.Project, lead *entity.Lead, score float64) error {
	return nil
}

type okScheduler struct{}

func (okScheduler) CreateMeeting(ctx context.Context, user *entity.User, draft *entity.MeetingDraft) (*entity.Meeting, error) {
	return entity.NewMeeting(draft), nil
}

type okMailer struct{}

func (okMailer) SendMeetingInvite(ctx context.Context, user *entity.User, meeting *entity.Meeting, attendeeEmail, attendeeName string) error {
	return nil
}

func newOutreachRouter(h *OutreachHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/projects/{id}/leads", h.HandleRankedLeads)
	r.Post("/projects/{id}/outreach", h.HandleRunBatch)
	return r
}

func mediumLead(id string) *entity.Lead {
	lead := entity.NewLead("Lead "+id, id+"@example.com")
	lead.ID = id
	lead.BudgetRange = entity.BudgetRangeMedium
	return lead
}

func TestOutreachHandler_RankedLeads(t *testing.T) {
	leads := new(MockLeadRepository)
	projects := new(MockProjectRepository)
	handler := NewOutreachHandler(leads, projects, new(MockUserRepository), nil)

	project := entity.NewProject("Website", "Acme", 25_000)
	project.ID = "p1"
	projects.On("FindByID", mock.Anything, "p1").Return(project, nil)
	leads.On("List", mock.Anything, entity.LeadFilter{BudgetRange: entity.BudgetRangeMedium}).
		Return([]*entity.Lead{mediumLead("l1"), mediumLead("l2")}, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects/p1/leads", nil)
	rec := httptest.NewRecorder()
	newOutreachRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Leads []struct {
			Score float64 `json:"score"`
			Label string  `json:"label"`
		} `json:"leads"`
		Count int `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, 100.0, body.Leads[0].Score)
	assert.Equal(t, "Perfect Match", body.Leads[0].Label)
}

func TestOutreachHandler_RankedLeadsProjectNotFound(t *testing.T) {
	projects := new(MockProjectRepository)
	handler := NewOutreachHandler(new(MockLeadRepository), projects, new(MockUserRepository), nil)

	projects.On("FindByID", mock.Anything, "missing").Return(nil, entity.ErrProjectNotFound)

	req := httptest.NewRequest(http.MethodGet, "/projects/missing/leads", nil)
	rec := httptest.NewRecorder()
	newOutreachRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOutreachHandler_RunBatchRequiresIdentity(t *testing.T) {
	handler := NewOutreachHandler(new(MockLeadRepository), new(MockProjectRepository), new(MockUserRepository), nil)

	req := httptest.NewRequest(http.MethodPost, "/projects/p1/outreach", nil)
	rec := httptest.NewRecorder()
	newOutreachRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOutreachHandler_RunBatch(t *testing.T) {
	leads := new(MockLeadRepository)
	projects := new(MockProjectRepository)
	users := new(MockUserRepository)

	outreachUC := usecase.NewOutreachUseCase(okNotifier{}, okScheduler{}, okMailer{})
	outreachUC.SendDelay = 0
	handler := NewOutreachHandler(leads, projects, users, outreachUC)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	user.ID = "u1"
	users.On("FindByID", mock.Anything, "u1").Return(user, nil)

	project := entity.NewProject("Website", "Acme", 25_000)
	project.ID = "p1"
	projects.On("FindByID", mock.Anything, "p1").Return(project, nil)

	var pool []*entity.Lead
	for _, id := range []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"} {
		pool = append(pool, mediumLead(id))
	}
	leads.On("List", mock.Anything, entity.LeadFilter{BudgetRange: entity.BudgetRangeMedium}).Return(pool, nil)

	req := httptest.NewRequest(http.MethodPost, "/projects/p1/outreach", nil)
	req.Header.Set("x-user-id", "u1")
	rec := httptest.NewRecorder()
	newOutreachRouter(handler).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var result usecase.OutreachBatchResult
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 5, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Len(t, result.ScheduledLeadIDs, 5)
	assert.Equal(t, "Successfully sent 5 invitations (0 failed) and scheduled follow-up meetings", result.Summary)
}

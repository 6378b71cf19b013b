package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// MockMeetingRepository
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) List(ctx context.Context) ([]*entity.Meeting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) Update(ctx context.Context, meeting *entity.Meeting) error {
	args := m.Called(ctx, meeting)
	return args.Error(0)
}

func (m *MockMeetingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMeetingRepository) SetGoogleEvent(ctx context.Context, id, eventID, meetingLink string) error {
	args := m.Called(ctx, id, eventID, meetingLink)
	return args.Error(0)
}

// MockCalendarProvider
type MockCalendarProvider struct {
	mock.Mock
}

func (m *MockCalendarProvider) CreateEvent(ctx context.Context, accessToken string, meeting *entity.Meeting) (*CalendarEvent, error) {
	args := m.Called(ctx, accessToken, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CalendarEvent), args.Error(1)
}

type stubLinkGenerator struct{}

func (stubLinkGenerator) Generate(platform, title string) string {
	return "https://meet.google.com/stub-link"
}

func validDraft() *entity.MeetingDraft {
	return &entity.MeetingDraft{
		Title:       "Kickoff",
		MeetingDate: "2026-04-01",
		MeetingTime: "14:00",
		Duration:    30,
		Platform:    entity.PlatformGoogleMeet,
	}
}

func TestCreateMeeting_PersistsWithGeneratedLink(t *testing.T) {
	repo := new(MockMeetingRepository)
	uc := NewCreateMeetingUseCase(repo, stubLinkGenerator{}, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	meeting, err := uc.CreateMeeting(context.Background(), nil, validDraft())

	assert.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/stub-link", meeting.MeetingLink)
	assert.Equal(t, entity.MeetingStatusScheduled, meeting.Status)
	repo.AssertExpectations(t)
}

func TestCreateMeeting_InvalidDraftIsDomainError(t *testing.T) {
	repo := new(MockMeetingRepository)
	uc := NewCreateMeetingUseCase(repo, stubLinkGenerator{}, nil)

	draft := validDraft()
	draft.Title = ""

	_, err := uc.CreateMeeting(context.Background(), nil, draft)

	assert.Error(t, err)
	assert.True(t, IsDomainError(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreateMeeting_RepositoryFailureIsTechnicalError(t *testing.T) {
	repo := new(MockMeetingRepository)
	uc := NewCreateMeetingUseCase(repo, stubLinkGenerator{}, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := uc.CreateMeeting(context.Background(), nil, validDraft())

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))
}

func TestCreateMeeting_GoogleUpgrade(t *testing.T) {
	repo := new(MockMeetingRepository)
	cal := new(MockCalendarProvider)
	uc := NewCreateMeetingUseCase(repo, stubLinkGenerator{}, cal)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	user.GoogleAccessToken = "ya29.token"

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cal.On("CreateEvent", mock.Anything, "ya29.token", mock.Anything).
		Return(&CalendarEvent{EventID: "evt-1", MeetingLink: "https://meet.google.com/real-link"}, nil)
	repo.On("SetGoogleEvent", mock.Anything, mock.Anything, "evt-1", "https://meet.google.com/real-link").Return(nil)

	meeting, err := uc.CreateMeeting(context.Background(), user, validDraft())

	assert.NoError(t, err)
	assert.Equal(t, "evt-1", meeting.GoogleEventID)
	assert.Equal(t, "https://meet.google.com/real-link", meeting.MeetingLink)
	repo.AssertExpectations(t)
}

func TestCreateMeeting_GoogleFailureKeepsMeeting(t *testing.T) {
	repo := new(MockMeetingRepository)
	cal := new(MockCalendarProvider)
	uc := NewCreateMeetingUseCase(repo, stubLinkGenerator{}, cal)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	user.GoogleAccessToken = "ya29.token"

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cal.On("CreateEvent", mock.Anything, "ya29.token", mock.Anything).Return(nil, errors.New("token expired"))

	meeting, err := uc.CreateMeeting(context.Background(), user, validDraft())

	assert.NoError(t, err)
	assert.Empty(t, meeting.GoogleEventID)
	assert.Equal(t, "https://meet.google.com/stub-link", meeting.MeetingLink)
	repo.AssertNotCalled(t, "SetGoogleEvent")
}

func TestCreateMeeting_SkipsGoogleWithoutConnection(t *testing.T) {
	repo := new(MockMeetingRepository)
	cal := new(MockCalendarProvider)
	uc := NewCreateMeetingUseCase(repo, stubLinkGenerator{}, cal)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := uc.CreateMeeting(context.Background(), nil, validDraft())

	assert.NoError(t, err)
	cal.AssertNotCalled(t, "CreateEvent")
}

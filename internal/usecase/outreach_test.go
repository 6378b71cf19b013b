package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendProjectInvite(ctx context.Context, user *entity.User, project *entity.Project, lead *entity.Lead, score float64) error {
	args := m.Called(ctx, user, project, lead, score)
	return args.Error(0)
}

// MockScheduler
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) CreateMeeting(ctx context.Context, user *entity.User, draft *entity.MeetingDraft) (*entity.Meeting, error) {
	args := m.Called(ctx, user, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Meeting), args.Error(1)
}

// MockMailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendMeetingInvite(ctx context.Context, user *entity.User, meeting *entity.Meeting, attendeeEmail, attendeeName string) error {
	args := m.Called(ctx, user, meeting, attendeeEmail, attendeeName)
	return args.Error(0)
}

func newTestOutreach(notifier *MockNotifier, scheduler *MockScheduler, mailer *MockMailer) *OutreachUseCase {
	uc := NewOutreachUseCase(notifier, scheduler, mailer)
	uc.SendDelay = 0
	return uc
}

func rankedFixture(n int) []RankedLead {
	var ranked []RankedLead
	for i := 1; i <= n; i++ {
		lead := entity.NewLead(fmt.Sprintf("Lead %d", i), fmt.Sprintf("lead%d@example.com", i))
		lead.ID = fmt.Sprintf("lead-%d", i)
		lead.BudgetRange = entity.BudgetRangeMedium
		ranked = append(ranked, RankedLead{Lead: lead, Score: 100})
	}
	return ranked
}

func meetingFixture(id string) *entity.Meeting {
	return &entity.Meeting{ID: id, Title: "Follow-up"}
}

func TestRunBatch_AllInvitesDelivered(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(3)

	notifier.On("SendProjectInvite", mock.Anything, user, project, mock.Anything, 100.0).Return(nil)
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(meetingFixture("m1"), nil)
	mailer.On("SendMeetingInvite", mock.Anything, user, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := uc.RunBatch(context.Background(), user, ranked, project, 5)

	assert.Equal(t, 3, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Len(t, result.ScheduledLeadIDs, 3)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "Successfully sent 3 invitations (0 failed) and scheduled follow-up meetings", result.Summary)
	notifier.AssertNumberOfCalls(t, "SendProjectInvite", 3)
}

func TestRunBatch_InviteFailureStopsThatLeadOnly(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(5)

	// Lead 3's invite bounces; everyone else goes through.
	for i, r := range ranked {
		if i == 2 {
			notifier.On("SendProjectInvite", mock.Anything, user, project, r.Lead, 100.0).Return(errors.New("smtp: mailbox unavailable"))
			continue
		}
		notifier.On("SendProjectInvite", mock.Anything, user, project, r.Lead, 100.0).Return(nil)
	}
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(meetingFixture("m1"), nil)
	mailer.On("SendMeetingInvite", mock.Anything, user, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := uc.RunBatch(context.Background(), user, ranked, project, 5)

	assert.Equal(t, 4, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Len(t, result.ScheduledLeadIDs, 4)
	assert.NotContains(t, result.ScheduledLeadIDs, "lead-3")
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, StageInvite, result.Failures[0].Stage)
	assert.Equal(t, "lead-3", result.Failures[0].LeadID)
	assert.Equal(t, "Sent 4 invitations successfully, but 1 failed. Meetings scheduled for successful invites", result.Summary)

	// No meeting was attempted for the bounced lead.
	scheduler.AssertNumberOfCalls(t, "CreateMeeting", 4)
}

func TestRunBatch_SchedulingFailureStillCountsInvite(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(1)

	notifier.On("SendProjectInvite", mock.Anything, user, project, mock.Anything, 100.0).Return(nil)
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(nil, errors.New("calendar down"))

	result := uc.RunBatch(context.Background(), user, ranked, project, 5)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Empty(t, result.ScheduledLeadIDs)
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, StageSchedule, result.Failures[0].Stage)
	mailer.AssertNotCalled(t, "SendMeetingInvite")
}

func TestRunBatch_NotifyFailureRecordedButNotCounted(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(1)

	notifier.On("SendProjectInvite", mock.Anything, user, project, mock.Anything, 100.0).Return(nil)
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(meetingFixture("m1"), nil)
	mailer.On("SendMeetingInvite", mock.Anything, user, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ics rejected"))

	result := uc.RunBatch(context.Background(), user, ranked, project, 5)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, []string{"lead-1"}, result.ScheduledLeadIDs)
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, StageNotify, result.Failures[0].Stage)
}

func TestRunBatch_EnforcesLimit(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(8)

	notifier.On("SendProjectInvite", mock.Anything, user, project, mock.Anything, 100.0).Return(nil)
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(meetingFixture("m1"), nil)
	mailer.On("SendMeetingInvite", mock.Anything, user, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := uc.RunBatch(context.Background(), user, ranked, project, 0)

	// limit <= 0 falls back to the outreach default of 5
	assert.Equal(t, 5, result.SuccessCount)
	notifier.AssertNumberOfCalls(t, "SendProjectInvite", 5)
}

func TestRunBatch_SkipsDuplicateLeads(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(2)
	ranked = append(ranked, ranked[0]) // same lead twice

	notifier.On("SendProjectInvite", mock.Anything, user, project, mock.Anything, 100.0).Return(nil)
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(meetingFixture("m1"), nil)
	mailer.On("SendMeetingInvite", mock.Anything, user, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := uc.RunBatch(context.Background(), user, ranked, project, 5)

	assert.Equal(t, 2, result.SuccessCount)
	notifier.AssertNumberOfCalls(t, "SendProjectInvite", 2)
}

func TestRunBatch_CancelledContextStopsBetweenLeads(t *testing.T) {
	notifier := new(MockNotifier)
	scheduler := new(MockScheduler)
	mailer := new(MockMailer)
	uc := newTestOutreach(notifier, scheduler, mailer)

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)
	ranked := rankedFixture(3)

	ctx, cancel := context.WithCancel(context.Background())

	notifier.On("SendProjectInvite", mock.Anything, user, project, mock.Anything, 100.0).
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil)
	scheduler.On("CreateMeeting", mock.Anything, user, mock.Anything).Return(meetingFixture("m1"), nil)
	mailer.On("SendMeetingInvite", mock.Anything, user, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result := uc.RunBatch(ctx, user, ranked, project, 5)

	// First lead completes, then the cancellation is noticed.
	assert.Equal(t, 1, result.SuccessCount)
	notifier.AssertNumberOfCalls(t, "SendProjectInvite", 1)
}

func TestRunBatch_EmptyInput(t *testing.T) {
	uc := newTestOutreach(new(MockNotifier), new(MockScheduler), new(MockMailer))

	user := entity.NewUser("alice", "Alice", "alice@example.com", "secret")
	project := entity.NewProject("Website", "Acme", 25_000)

	result := uc.RunBatch(context.Background(), user, nil, project, 5)

	assert.Equal(t, 0, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, "Failed to send invitations: 0 succeeded, 0 failed", result.Summary)
}

func TestFollowUpDraft_TwoDaysOutAtConfiguredTime(t *testing.T) {
	uc := newTestOutreach(new(MockNotifier), new(MockScheduler), new(MockMailer))
	uc.now = func() time.Time {
		return time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	}

	lead := entity.NewLead("Bob", "bob@example.com")
	lead.Company = "Widgets Inc"
	project := entity.NewProject("Website Redesign", "Acme", 75_000)

	draft := uc.followUpDraft(lead, project)

	assert.Equal(t, "Project Discussion: Website Redesign - Bob", draft.Title)
	assert.Equal(t, "2026-03-12", draft.MeetingDate)
	assert.Equal(t, "14:00", draft.MeetingTime)
	assert.Equal(t, 60, draft.Duration)
	assert.Equal(t, entity.PlatformGoogleMeet, draft.Platform)
	assert.Equal(t, "bob@example.com", draft.Attendees)
	assert.Contains(t, draft.Description, "Widgets Inc")
	assert.Contains(t, draft.Description, "Budget: $75,000")
}

func TestFollowUpDraft_MissingCompanyFallsBack(t *testing.T) {
	uc := newTestOutreach(new(MockNotifier), new(MockScheduler), new(MockMailer))

	lead := entity.NewLead("Bob", "bob@example.com")
	project := entity.NewProject("Website", "Acme", 25_000)

	draft := uc.followUpDraft(lead, project)

	assert.Contains(t, draft.Description, "from N/A")
}

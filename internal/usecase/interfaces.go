package usecase

import (
	"context"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// ProjectNotifier delivers the initial project invitation to a lead.
// The acting user is always passed in explicitly; nothing here infers
// identity from ambient state.
type ProjectNotifier interface {
	SendProjectInvite(ctx context.Context, user *entity.User, project *entity.Project, lead *entity.Lead, score float64) error
}

// MeetingScheduler persists a follow-up meeting from a draft.
type MeetingScheduler interface {
	CreateMeeting(ctx context.Context, user *entity.User, draft *entity.MeetingDraft) (*entity.Meeting, error)
}

// MeetingMailer emails a calendar invite for an already-created meeting.
type MeetingMailer interface {
	SendMeetingInvite(ctx context.Context, user *entity.User, meeting *entity.Meeting, attendeeEmail, attendeeName string) error
}

// MeetingLinkGenerator produces a join link for a platform.
type MeetingLinkGenerator interface {
	Generate(platform, title string) string
}

// CalendarEvent is what a calendar provider returns after inserting an
// event for a meeting.
type CalendarEvent struct {
	EventID     string
	MeetingLink string
}

// CalendarProvider upgrades a persisted meeting into a real calendar
// event (Google Calendar in production).
type CalendarProvider interface {
	CreateEvent(ctx context.Context, accessToken string, meeting *entity.Meeting) (*CalendarEvent, error)
}

// VerificationPublisher queues a signup verification email for async
// delivery.
type VerificationPublisher interface {
	PublishVerification(ctx context.Context, payload VerificationPayload) error
}

// VerificationPayload travels through the queue to the mail worker.
type VerificationPayload struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

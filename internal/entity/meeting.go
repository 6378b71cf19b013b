package entity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrMeetingNotFound = errors.New("meeting not found")

// Meeting platforms
const (
	PlatformGoogleMeet = "google-meet"
	PlatformZoom       = "zoom"
	PlatformTeams      = "teams"
	PlatformJitsi      = "jitsi"
)

// Meeting statuses
const (
	MeetingStatusScheduled = "scheduled"
	MeetingStatusCancelled = "cancelled"
	MeetingStatusCompleted = "completed"
)

// Wire formats for meeting date and time columns.
const (
	MeetingDateLayout = "2006-01-02"
	MeetingTimeLayout = "15:04"
)

type Meeting struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Attendees     string    `json:"attendees,omitempty"` // comma-joined emails
	MeetingDate   string    `json:"meeting_date"`        // YYYY-MM-DD
	MeetingTime   string    `json:"meeting_time"`        // HH:MM
	Duration      int       `json:"duration"`            // minutes
	MeetingLink   string    `json:"meeting_link,omitempty"`
	Platform      string    `json:"platform"`
	GoogleEventID string    `json:"google_event_id,omitempty"`
	Status        string    `json:"status"` // scheduled, cancelled, completed
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MeetingDraft is the pre-persistence shape a scheduler receives.
type MeetingDraft struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Attendees   string `json:"attendees,omitempty"`
	MeetingDate string `json:"meeting_date"`
	MeetingTime string `json:"meeting_time"`
	Duration    int    `json:"duration"`
	Platform    string `json:"platform"`
}

func NewMeeting(draft *MeetingDraft) *Meeting {
	duration := draft.Duration
	if duration <= 0 {
		duration = 60
	}
	platform := draft.Platform
	if platform == "" {
		platform = PlatformGoogleMeet
	}

	return &Meeting{
		ID:          uuid.New().String(),
		Title:       draft.Title,
		Description: draft.Description,
		Attendees:   draft.Attendees,
		MeetingDate: draft.MeetingDate,
		MeetingTime: draft.MeetingTime,
		Duration:    duration,
		Platform:    platform,
		Status:      MeetingStatusScheduled,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// StartsAt combines the date and time columns into a UTC instant.
func (m *Meeting) StartsAt() (time.Time, error) {
	t, err := time.Parse(MeetingDateLayout+"T"+MeetingTimeLayout, fmt.Sprintf("%sT%s", m.MeetingDate, m.MeetingTime))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid meeting schedule: %w", err)
	}
	return t.UTC(), nil
}

func (m *Meeting) EndsAt() (time.Time, error) {
	start, err := m.StartsAt()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(time.Duration(m.Duration) * time.Minute), nil
}

type MeetingRepositoryInterface interface {
	Create(ctx context.Context, meeting *Meeting) error
	List(ctx context.Context) ([]*Meeting, error)
	FindByID(ctx context.Context, id string) (*Meeting, error)
	Update(ctx context.Context, meeting *Meeting) error
	Delete(ctx context.Context, id string) error
	SetGoogleEvent(ctx context.Context, id, eventID, meetingLink string) error
}

package calendar

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

func TestGoogleMeetLinkFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^https://meet\.google\.com/[a-z]{3}-[a-z]{4}-[a-z]{3}$`)

	for i := 0; i < 20; i++ {
		assert.Regexp(t, pattern, GoogleMeetLink())
	}
}

func TestZoomLinkFormat(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^https://zoom\.us/j/\d{10}$`), ZoomLink())
}

func TestJitsiLinkSlugsTitle(t *testing.T) {
	link := JitsiLink("  Project Kickoff Call ")

	assert.Regexp(t, regexp.MustCompile(`^https://meet\.jit\.si/project-kickoff-call-\d+$`), link)
}

func TestGenerateDispatchesOnPlatform(t *testing.T) {
	g := NewLinkGenerator()

	assert.Contains(t, g.Generate(entity.PlatformZoom, "x"), "zoom.us")
	assert.Contains(t, g.Generate(entity.PlatformTeams, "x"), "teams.microsoft.com")
	assert.Contains(t, g.Generate(entity.PlatformJitsi, "standup"), "meet.jit.si")
	assert.Contains(t, g.Generate(entity.PlatformGoogleMeet, "x"), "meet.google.com")
	// unknown platforms fall back to Meet
	assert.Contains(t, g.Generate("carrier-pigeon", "x"), "meet.google.com")
}

func TestBuildInvite(t *testing.T) {
	meeting := &entity.Meeting{
		ID:          "m-123",
		Title:       "Project Discussion: Website - Bob",
		Description: "Follow-up meeting",
		Attendees:   "bob@example.com, carol@example.com",
		MeetingDate: "2026-04-01",
		MeetingTime: "14:00",
		Duration:    60,
		Platform:    entity.PlatformGoogleMeet,
		MeetingLink: "https://meet.google.com/abc-defg-hij",
	}

	ics, err := BuildInvite(meeting, "alice@example.com")
	assert.NoError(t, err)

	lines := strings.Split(ics, "\r\n")
	assert.Equal(t, "BEGIN:VCALENDAR", lines[0])
	assert.Equal(t, "END:VCALENDAR", lines[len(lines)-1])

	assert.Contains(t, ics, "METHOD:REQUEST")
	assert.Contains(t, ics, "UID:meeting-m-123@ansluta.com")
	assert.Contains(t, ics, "DTSTART:20260401T140000Z")
	assert.Contains(t, ics, "DTEND:20260401T150000Z")
	assert.Contains(t, ics, "SUMMARY:Project Discussion: Website - Bob")
	assert.Contains(t, ics, "ORGANIZER:mailto:alice@example.com")
	assert.Contains(t, ics, "ATTENDEE;CUTYPE=INDIVIDUAL;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:bob@example.com")
	assert.Contains(t, ics, "ATTENDEE;CUTYPE=INDIVIDUAL;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:carol@example.com")
	assert.Contains(t, ics, "TRIGGER:-PT15M")
	assert.Contains(t, ics, `Join Meeting: https://meet.google.com/abc-defg-hij`)
}

func TestBuildInviteDefaults(t *testing.T) {
	meeting := &entity.Meeting{
		ID:          "m-456",
		Title:       "Intro",
		MeetingDate: "2026-04-01",
		MeetingTime: "09:30",
		Duration:    30,
	}

	ics, err := BuildInvite(meeting, "")
	assert.NoError(t, err)

	assert.Contains(t, ics, "ORGANIZER:mailto:noreply@ansluta.com")
	assert.Contains(t, ics, "LOCATION:Online Meeting")
}

func TestBuildInviteRejectsBadDate(t *testing.T) {
	meeting := &entity.Meeting{
		ID:          "m-789",
		Title:       "Broken",
		MeetingDate: "not-a-date",
		MeetingTime: "09:30",
	}

	_, err := BuildInvite(meeting, "alice@example.com")
	assert.Error(t, err)
}

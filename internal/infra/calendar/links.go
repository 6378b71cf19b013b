package calendar

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

const meetChars = "abcdefghijklmnopqrstuvwxyz"

var slugPattern = regexp.MustCompile(`\s+`)

// LinkGenerator produces placeholder join links per platform. The
// google-meet link gets replaced by the real one when the Calendar API
// sync succeeds.
type LinkGenerator struct{}

func NewLinkGenerator() *LinkGenerator {
	return &LinkGenerator{}
}

func (g *LinkGenerator) Generate(platform, title string) string {
	switch platform {
	case entity.PlatformZoom:
		return ZoomLink()
	case entity.PlatformTeams:
		return TeamsLink()
	case entity.PlatformJitsi:
		return JitsiLink(title)
	default:
		return GoogleMeetLink()
	}
}

// GoogleMeetLink renders the xxx-xxxx-xxx code format Meet uses.
func GoogleMeetLink() string {
	code := make([]byte, 10)
	for i := range code {
		code[i] = meetChars[rand.Intn(len(meetChars))]
	}
	return fmt.Sprintf("https://meet.google.com/%s-%s-%s", code[0:3], code[3:7], code[7:10])
}

func ZoomLink() string {
	meetingID := rand.Int63n(9_000_000_000) + 1_000_000_000
	return fmt.Sprintf("https://zoom.us/j/%d", meetingID)
}

func TeamsLink() string {
	return fmt.Sprintf("https://teams.microsoft.com/l/meetup-join/19%%3ameeting_%x%%40thread.v2/0", rand.Int63())
}

func JitsiLink(title string) string {
	room := strings.ToLower(slugPattern.ReplaceAllString(strings.TrimSpace(title), "-"))
	return fmt.Sprintf("https://meet.jit.si/%s-%d", room, time.Now().UnixMilli())
}

package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

const icsDateLayout = "20060102T150405Z"

// BuildInvite renders an RFC 5545 invite (METHOD:REQUEST) for a meeting,
// with a 15-minute display reminder. Mail clients attach this as
// invite.ics so the event lands on the attendee's calendar.
func BuildInvite(meeting *entity.Meeting, organizerEmail string) (string, error) {
	start, err := meeting.StartsAt()
	if err != nil {
		return "", err
	}
	end, err := meeting.EndsAt()
	if err != nil {
		return "", err
	}

	if organizerEmail == "" {
		organizerEmail = "noreply@ansluta.com"
	}

	location := meeting.MeetingLink
	if location == "" {
		location = "Online Meeting"
	}

	description := meeting.Description
	if meeting.MeetingLink != "" {
		description += `\n\nJoin Meeting: ` + meeting.MeetingLink
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Ansluta//Meeting Scheduler//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:meeting-%s@ansluta.com", meeting.ID),
		"DTSTAMP:" + time.Now().UTC().Format(icsDateLayout),
		"DTSTART:" + start.Format(icsDateLayout),
		"DTEND:" + end.Format(icsDateLayout),
		"SUMMARY:" + meeting.Title,
		"DESCRIPTION:" + description,
		"LOCATION:" + location,
		"ORGANIZER:mailto:" + organizerEmail,
	}

	for _, email := range strings.Split(meeting.Attendees, ",") {
		email = strings.TrimSpace(email)
		if email == "" {
			continue
		}
		lines = append(lines, "ATTENDEE;CUTYPE=INDIVIDUAL;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:"+email)
	}

	lines = append(lines,
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"BEGIN:VALARM",
		"TRIGGER:-PT15M",
		"ACTION:DISPLAY",
		"DESCRIPTION:Meeting reminder",
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	)

	return strings.Join(lines, "\r\n"), nil
}

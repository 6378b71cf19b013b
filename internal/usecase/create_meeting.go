package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// CreateMeetingUseCase persists a meeting with a generated join link and
// best-effort upgrades it to a real Google Calendar event when the
// acting user has a connected Google account.
type CreateMeetingUseCase struct {
	Repo     entity.MeetingRepositoryInterface
	Links    MeetingLinkGenerator
	Calendar CalendarProvider
}

func NewCreateMeetingUseCase(repo entity.MeetingRepositoryInterface, links MeetingLinkGenerator, calendar CalendarProvider) *CreateMeetingUseCase {
	return &CreateMeetingUseCase{
		Repo:     repo,
		Links:    links,
		Calendar: calendar,
	}
}

func (uc *CreateMeetingUseCase) CreateMeeting(ctx context.Context, user *entity.User, draft *entity.MeetingDraft) (*entity.Meeting, error) {
	if errs := ValidateMeetingDraft(draft); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: joinValidationErrors(errs)}
	}

	meeting := entity.NewMeeting(draft)
	meeting.MeetingLink = uc.Links.Generate(meeting.Platform, meeting.Title)

	if err := uc.Repo.Create(ctx, meeting); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "failed to persist meeting: " + err.Error(),
		}
	}

	// Calendar upgrade is best effort. A failure here never breaks the
	// meeting that is already in the database.
	if uc.Calendar != nil && user != nil && user.GoogleAccessToken != "" && meeting.Platform == entity.PlatformGoogleMeet {
		event, err := uc.Calendar.CreateEvent(ctx, user.GoogleAccessToken, meeting)
		if err != nil {
			log.Printf("⚠️ [MEETING] Google Calendar sync failed for %s: %v", meeting.ID, err)
			return meeting, nil
		}

		meeting.GoogleEventID = event.EventID
		if event.MeetingLink != "" {
			meeting.MeetingLink = event.MeetingLink
		}
		if err := uc.Repo.SetGoogleEvent(ctx, meeting.ID, meeting.GoogleEventID, meeting.MeetingLink); err != nil {
			log.Printf("⚠️ [MEETING] Failed to store Google event id for %s: %v", meeting.ID, err)
		}
	}

	return meeting, nil
}

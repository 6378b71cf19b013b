package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

// Outreach defaults. The delay keeps us under third-party send limits;
// the timeout keeps one stuck collaborator from stalling a whole batch.
const (
	DefaultSendDelay    = 1 * time.Second
	DefaultCallTimeout  = 15 * time.Second
	DefaultFollowUpTime = "14:00"
	FollowUpLeadDays    = 2
	FollowUpDuration    = 60 // minutes
)

// LeadOutcome is the per-lead result of one outreach pass.
type LeadOutcome struct {
	LeadID    string `json:"lead_id"`
	Invited   bool   `json:"invited"`
	Scheduled bool   `json:"scheduled"`
	Notified  bool   `json:"notified"`
	MeetingID string `json:"meeting_id,omitempty"`
}

// StageFailure records a sub-failure without deciding how the caller
// should present it.
type StageFailure struct {
	LeadID string `json:"lead_id"`
	Stage  string `json:"stage"` // invite, schedule, notify
	Error  string `json:"error"`
}

// OutreachBatchResult aggregates one batch run. SuccessCount and
// ErrorCount track invite delivery only; schedule and notify failures
// appear in Failures but deliberately do not bump ErrorCount, so the
// "invite sent" signal stays clean.
type OutreachBatchResult struct {
	SuccessCount      int            `json:"success_count"`
	ErrorCount        int            `json:"error_count"`
	ScheduledLeadIDs  []string       `json:"scheduled_lead_ids"`
	ScheduledMeetings []string       `json:"scheduled_meeting_ids"`
	Outcomes          []LeadOutcome  `json:"outcomes"`
	Failures          []StageFailure `json:"failures,omitempty"`
	Summary           string         `json:"summary"`
}

// OutreachUseCase drives a bounded batch of lead invitations: invite,
// auto-schedule a follow-up meeting, email the calendar invite. Leads
// are processed strictly one at a time.
type OutreachUseCase struct {
	Notifier  ProjectNotifier
	Scheduler MeetingScheduler
	Mailer    MeetingMailer

	SendDelay    time.Duration
	CallTimeout  time.Duration
	FollowUpTime string // HH:MM, time-of-day for auto-scheduled meetings

	now func() time.Time
}

func NewOutreachUseCase(notifier ProjectNotifier, scheduler MeetingScheduler, mailer MeetingMailer) *OutreachUseCase {
	return &OutreachUseCase{
		Notifier:     notifier,
		Scheduler:    scheduler,
		Mailer:       mailer,
		SendDelay:    DefaultSendDelay,
		CallTimeout:  DefaultCallTimeout,
		FollowUpTime: DefaultFollowUpTime,
		now:          time.Now,
	}
}

// ProcessLead runs the three-step outreach for one lead. An invite
// failure stops the lead right there. A scheduling or notification
// failure after a delivered invite is logged and recorded but the lead
// still counts as invited; nothing is rolled back.
func (uc *OutreachUseCase) ProcessLead(ctx context.Context, user *entity.User, lead *entity.Lead, project *entity.Project, score float64) (LeadOutcome, []StageFailure) {
	outcome := LeadOutcome{LeadID: lead.ID}
	var failures []StageFailure

	if err := uc.call(ctx, func(ctx context.Context) error {
		return uc.Notifier.SendProjectInvite(ctx, user, project, lead, score)
	}); err != nil {
		log.Printf("❌ [OUTREACH] Invite to %s (%s) failed: %v", lead.Name, lead.Email, err)
		failures = append(failures, StageFailure{LeadID: lead.ID, Stage: StageInvite, Error: err.Error()})
		return outcome, failures
	}
	outcome.Invited = true

	draft := uc.followUpDraft(lead, project)

	var meeting *entity.Meeting
	if err := uc.call(ctx, func(ctx context.Context) error {
		var err error
		meeting, err = uc.Scheduler.CreateMeeting(ctx, user, draft)
		return err
	}); err != nil {
		log.Printf("⚠️ [OUTREACH] Invite sent to %s but follow-up scheduling failed: %v", lead.Name, err)
		failures = append(failures, StageFailure{LeadID: lead.ID, Stage: StageSchedule, Error: err.Error()})
		return outcome, failures
	}
	outcome.Scheduled = true
	outcome.MeetingID = meeting.ID

	if err := uc.call(ctx, func(ctx context.Context) error {
		return uc.Mailer.SendMeetingInvite(ctx, user, meeting, lead.Email, lead.Name)
	}); err != nil {
		log.Printf("⚠️ [OUTREACH] Meeting scheduled for %s but invite email failed: %v", lead.Name, err)
		failures = append(failures, StageFailure{LeadID: lead.ID, Stage: StageNotify, Error: err.Error()})
		return outcome, failures
	}
	outcome.Notified = true

	return outcome, failures
}

// RunBatch invites up to limit ranked leads, sequentially, with a fixed
// delay between sends. A lead already processed in this run is skipped.
// Cancelling ctx stops the batch between leads; the partial result is
// still returned.
func (uc *OutreachUseCase) RunBatch(ctx context.Context, user *entity.User, ranked []RankedLead, project *entity.Project, limit int) *OutreachBatchResult {
	if limit <= 0 {
		limit = OutreachRankLimit
	}

	result := &OutreachBatchResult{}
	sent := make(map[string]bool)
	processed := 0

	for _, r := range ranked {
		if processed >= limit {
			break
		}
		if sent[r.Lead.ID] {
			continue
		}
		if ctx.Err() != nil {
			log.Printf("⚠️ [OUTREACH] Batch cancelled after %d lead(s): %v", processed, ctx.Err())
			break
		}

		if processed > 0 && !uc.pause(ctx) {
			log.Printf("⚠️ [OUTREACH] Batch cancelled during send delay: %v", ctx.Err())
			break
		}

		sent[r.Lead.ID] = true
		processed++

		outcome, failures := uc.ProcessLead(ctx, user, r.Lead, project, r.Score)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Failures = append(result.Failures, failures...)

		if outcome.Invited {
			result.SuccessCount++
			log.Printf("✅ [OUTREACH] Invite sent to %s (%s)", r.Lead.Name, r.Lead.Email)
		} else {
			result.ErrorCount++
		}
		if outcome.Scheduled {
			result.ScheduledLeadIDs = append(result.ScheduledLeadIDs, r.Lead.ID)
			result.ScheduledMeetings = append(result.ScheduledMeetings, outcome.MeetingID)
		}
	}

	result.Summary = uc.summarize(result)
	log.Printf("📬 [OUTREACH] Batch finished for project %s: %s", project.Name, result.Summary)
	return result
}

// summarize reports both counts verbatim in every branch. A nonzero
// failure count is never hidden.
func (uc *OutreachUseCase) summarize(result *OutreachBatchResult) string {
	switch {
	case result.SuccessCount > 0 && result.ErrorCount == 0:
		return fmt.Sprintf("Successfully sent %d invitations (0 failed) and scheduled follow-up meetings", result.SuccessCount)
	case result.SuccessCount > 0 && result.ErrorCount > 0:
		return fmt.Sprintf("Sent %d invitations successfully, but %d failed. Meetings scheduled for successful invites", result.SuccessCount, result.ErrorCount)
	default:
		return fmt.Sprintf("Failed to send invitations: %d succeeded, %d failed", result.SuccessCount, result.ErrorCount)
	}
}

// followUpDraft templates the auto-scheduled meeting: two days out at
// the configured time-of-day, one hour, the lead as sole attendee.
func (uc *OutreachUseCase) followUpDraft(lead *entity.Lead, project *entity.Project) *entity.MeetingDraft {
	meetingDate := uc.now().AddDate(0, 0, FollowUpLeadDays).Format(entity.MeetingDateLayout)

	company := lead.Company
	if company == "" {
		company = "N/A"
	}

	return &entity.MeetingDraft{
		Title: fmt.Sprintf("Project Discussion: %s - %s", project.Name, lead.Name),
		Description: fmt.Sprintf(
			"Follow-up meeting to discuss the %s project opportunity with %s from %s. Budget: $%s",
			project.Name, lead.Name, company, FormatAmount(project.Budget),
		),
		Attendees:   lead.Email,
		MeetingDate: meetingDate,
		MeetingTime: uc.FollowUpTime,
		Duration:    FollowUpDuration,
		Platform:    entity.PlatformGoogleMeet,
	}
}

// call wraps one collaborator call in the per-call timeout.
func (uc *OutreachUseCase) call(ctx context.Context, fn func(context.Context) error) error {
	timeout := uc.CallTimeout
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(callCtx)
}

// pause sleeps for the inter-lead delay, returning false if ctx was
// cancelled first.
func (uc *OutreachUseCase) pause(ctx context.Context) bool {
	if uc.SendDelay <= 0 {
		return true
	}
	timer := time.NewTimer(uc.SendDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// FormatAmount renders 75000 as "75,000", matching what the emails show.
func FormatAmount(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 0, 64)

	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

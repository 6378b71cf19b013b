package mail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ansluta-crm/internal/entity"
	"github.com/xavierca1/ansluta-crm/internal/infra/calendar"
	"github.com/xavierca1/ansluta-crm/internal/usecase"
)

func NewEmailSender(host string, port int, user, password, baseURL string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		BaseURL:  baseURL,
	}
}

// SendProjectInvite emails a lead about a project opportunity, using the
// acting user's SMTP account when configured.
func (s *EmailSender) SendProjectInvite(ctx context.Context, user *entity.User, project *entity.Project, lead *entity.Lead, score float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := ProjectInviteData{
		LeadName:    lead.Name,
		ProjectName: project.Name,
		ClientName:  project.ClientName,
		Budget:      usecase.FormatAmount(project.Budget),
		Status:      displayStatus(project.Status),
		Description: project.Description,
		Score:       int(math.Round(score)),
		Label:       usecase.EmailLabel(score),
		BudgetRange: lead.BudgetRange,
		Category:    lead.Category,
		Industry:    lead.Industry,
		Location:    lead.Location,
	}

	var body bytes.Buffer
	if err := projectInviteTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render project invite: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromAddress(user))
	m.SetHeader("To", lead.Email)
	m.SetHeader("Subject", fmt.Sprintf("Project Opportunity: %s", project.Name))
	m.SetBody("text/html", body.String())

	if err := s.dialerFor(user).DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send project invite: %w", err)
	}
	return nil
}

// SendMeetingInvite emails the meeting details with an attached
// invite.ics so the event lands on the attendee's calendar.
func (s *EmailSender) SendMeetingInvite(ctx context.Context, user *entity.User, meeting *entity.Meeting, attendeeEmail, attendeeName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ics, err := calendar.BuildInvite(meeting, s.fromAddress(user))
	if err != nil {
		return err
	}

	data := MeetingInviteData{
		AttendeeName: attendeeName,
		Title:        meeting.Title,
		Description:  meeting.Description,
		Date:         meeting.MeetingDate,
		Time:         meeting.MeetingTime,
		Duration:     meeting.Duration,
		Platform:     meeting.Platform,
		MeetingLink:  meeting.MeetingLink,
	}

	var body bytes.Buffer
	if err := meetingInviteTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render meeting invite: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.fromAddress(user))
	m.SetHeader("To", attendeeEmail)
	m.SetHeader("Subject", fmt.Sprintf("Meeting Invitation: %s", meeting.Title))
	m.SetBody("text/html", body.String())
	m.Attach("invite.ics",
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write([]byte(ics))
			return err
		}),
		gomail.SetHeader(map[string][]string{
			"Content-Type": {`text/calendar; method=REQUEST; charset="UTF-8"`},
		}),
	)

	if err := s.dialerFor(user).DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send meeting invite: %w", err)
	}
	return nil
}

// SendVerification always goes out through the system SMTP account; the
// user doesn't have their own settings yet at signup time.
func (s *EmailSender) SendVerification(name, email, token string) error {
	data := VerificationData{
		Name:      name,
		VerifyURL: fmt.Sprintf("%s/verify-email?token=%s", strings.TrimSuffix(s.BaseURL, "/"), token),
	}

	var body bytes.Buffer
	if err := verificationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render verification email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.User)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your Ansluta account")
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}

func (s *EmailSender) dialerFor(user *entity.User) *gomail.Dialer {
	if user != nil && user.HasSMTPSettings() {
		return gomail.NewDialer(user.SMTPHost, user.SMTPPort, user.SMTPEmail, user.SMTPPassword)
	}
	return gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
}

func (s *EmailSender) fromAddress(user *entity.User) string {
	if user != nil && user.SMTPEmail != "" {
		return user.SMTPEmail
	}
	if s.User != "" {
		return s.User
	}
	return "noreply@ansluta.com"
}

// displayStatus turns "on-hold" into "On hold" for the email body.
func displayStatus(status string) string {
	if status == "" {
		return ""
	}
	status = strings.ReplaceAll(status, "-", " ")
	return strings.ToUpper(status[:1]) + status[1:]
}

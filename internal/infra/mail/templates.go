package mail

import "html/template"

// Inline templates so the binary carries everything it needs.

var projectInviteTmpl = template.Must(template.New("project_invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #3B82F6, #1D4ED8); color: white; padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
      <h1 style="margin: 0;">Ansluta</h1>
      <p style="margin: 5px 0 0; opacity: 0.9;">Project Opportunity</p>
    </div>
    <div style="background: white; padding: 30px; border: 1px solid #e5e7eb; border-top: none;">
      <h2 style="margin-top: 0;">Hi {{.LeadName}},</h2>
      <p>We have an exciting project opportunity that matches your profile. Based on our analysis, you're a strong candidate for this project.</p>
      <p style="font-weight: 600;">{{.Label}} ({{.Score}}% compatibility)</p>
      <div style="background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 20px; margin: 20px 0;">
        <h3 style="margin-top: 0;">{{.ProjectName}}</h3>
        <p style="color: #6b7280;"><strong>Client:</strong> {{.ClientName}}</p>
        <p style="color: #6b7280;"><strong>Budget:</strong> ${{.Budget}}</p>
        <p style="color: #6b7280;"><strong>Status:</strong> {{.Status}}</p>
        {{if .Description}}<p><strong>Description:</strong></p><p style="color: #4b5563;">{{.Description}}</p>{{end}}
      </div>
      <div style="background: #dbeafe; padding: 15px; border-radius: 8px; border-left: 4px solid #3b82f6;">
        <h4 style="margin-top: 0;">Why you're a great fit:</h4>
        <ul>
          <li><strong>Budget Alignment:</strong> Your budget range ({{.BudgetRange}}) matches this project's scope</li>
          <li><strong>Category Match:</strong> Your profile ({{.Category}}) aligns with project requirements</li>
          {{if .Industry}}<li><strong>Industry Experience:</strong> Your {{.Industry}} background is relevant</li>{{end}}
          {{if .Location}}<li><strong>Location:</strong> Based in {{.Location}}</li>{{end}}
        </ul>
      </div>
      <p>We look forward to hearing from you!</p>
      <p><strong>The Ansluta Team</strong></p>
    </div>
  </div>
</body>
</html>`))

var meetingInviteTmpl = template.Must(template.New("meeting_invite").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background: linear-gradient(135deg, #3B82F6, #1D4ED8); color: white; padding: 30px; border-radius: 12px 12px 0 0; text-align: center;">
      <h1 style="margin: 0;">Ansluta</h1>
      <p style="margin: 5px 0 0; opacity: 0.9;">Meeting Invitation</p>
    </div>
    <div style="background: white; padding: 30px; border: 1px solid #e5e7eb; border-top: none;">
      <h2 style="margin-top: 0;">Hi {{.AttendeeName}},</h2>
      <p>You're invited to the following meeting. The calendar invite is attached.</p>
      <div style="background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 8px; padding: 20px; margin: 20px 0;">
        <h3 style="margin-top: 0;">{{.Title}}</h3>
        {{if .Description}}<p style="color: #4b5563;">{{.Description}}</p>{{end}}
        <p style="color: #6b7280;"><strong>Date:</strong> {{.Date}}</p>
        <p style="color: #6b7280;"><strong>Time:</strong> {{.Time}} UTC</p>
        <p style="color: #6b7280;"><strong>Duration:</strong> {{.Duration}} minutes</p>
        {{if .MeetingLink}}<p style="margin: 20px 0;"><a href="{{.MeetingLink}}" style="background: #3B82F6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px;">Join Meeting</a></p>{{end}}
      </div>
      <p><strong>The Ansluta Team</strong></p>
    </div>
  </div>
</body>
</html>`))

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Welcome to Ansluta, {{.Name}}!</h2>
    <p>Please confirm your email address to activate your account.</p>
    <p style="margin: 30px 0;"><a href="{{.VerifyURL}}" style="background: #3B82F6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px;">Verify Email</a></p>
    <p style="color: #6b7280; font-size: 14px;">If you didn't create an account, you can ignore this email.</p>
  </div>
</body>
</html>`))

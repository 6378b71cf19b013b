package mail

// EmailSender holds the system SMTP account used when the acting user
// has no SMTP settings of their own (verification emails always use the
// system account).
type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	BaseURL  string // frontend base URL for links in emails
}

type ProjectInviteData struct {
	LeadName    string
	ProjectName string
	ClientName  string
	Budget      string
	Status      string
	Description string
	Score       int
	Label       string
	BudgetRange string
	Category    string
	Industry    string
	Location    string
}

type MeetingInviteData struct {
	AttendeeName string
	Title        string
	Description  string
	Date         string
	Time         string
	Duration     int
	Platform     string
	MeetingLink  string
}

type VerificationData struct {
	Name      string
	VerifyURL string
}

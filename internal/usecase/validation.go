package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for _, e := range errs {
		msg += e.Field + " (" + e.Message + "), "
	}
	return strings.TrimSuffix(msg, ", ")
}

var validCategories = map[string]bool{
	entity.CategoryIndividual:    true,
	entity.CategoryStartup:       true,
	entity.CategorySmallBusiness: true,
	entity.CategoryEnterprise:    true,
	entity.CategoryGovernment:    true,
}

var validBudgetRanges = map[string]bool{
	entity.BudgetRangeLow:        true,
	entity.BudgetRangeMedium:     true,
	entity.BudgetRangeHigh:       true,
	entity.BudgetRangeEnterprise: true,
}

var validLeadStatuses = map[string]bool{
	entity.LeadStatusNew:       true,
	entity.LeadStatusContacted: true,
	entity.LeadStatusQualified: true,
	entity.LeadStatusClosed:    true,
}

var validProjectStatuses = map[string]bool{
	entity.ProjectStatusPlanning:  true,
	entity.ProjectStatusActive:    true,
	entity.ProjectStatusOnHold:    true,
	entity.ProjectStatusCompleted: true,
}

var validPlatforms = map[string]bool{
	entity.PlatformGoogleMeet: true,
	entity.PlatformZoom:       true,
	entity.PlatformTeams:      true,
	entity.PlatformJitsi:      true,
}

func ValidateLead(lead *entity.Lead) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(lead.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}

	if strings.TrimSpace(lead.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(lead.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if lead.Category != "" && !validCategories[lead.Category] {
		errs = append(errs, ValidationError{"category", "must be individual, startup, small-business, enterprise or government"})
	}

	if lead.BudgetRange != "" && !validBudgetRanges[lead.BudgetRange] {
		errs = append(errs, ValidationError{"budget_range", "must be low, medium, high or enterprise"})
	}

	if lead.Status != "" && !validLeadStatuses[lead.Status] {
		errs = append(errs, ValidationError{"status", "must be new, contacted, qualified or closed"})
	}

	if lead.SalaryMin != nil && *lead.SalaryMin < 0 {
		errs = append(errs, ValidationError{"salary_min", "must not be negative"})
	}
	if lead.SalaryMax != nil && *lead.SalaryMax < 0 {
		errs = append(errs, ValidationError{"salary_max", "must not be negative"})
	}
	if lead.SalaryMin != nil && lead.SalaryMax != nil && *lead.SalaryMin > *lead.SalaryMax {
		errs = append(errs, ValidationError{"salary_min", "must not exceed salary_max"})
	}

	return errs
}

func ValidateProject(project *entity.Project) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(project.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(project.ClientName) == "" {
		errs = append(errs, ValidationError{"client_name", "is required"})
	}
	if project.Budget < 0 {
		errs = append(errs, ValidationError{"budget", "must not be negative"})
	}
	if project.Status != "" && !validProjectStatuses[project.Status] {
		errs = append(errs, ValidationError{"status", "must be planning, active, on-hold or completed"})
	}
	if project.StartDate != nil && project.EndDate != nil && project.EndDate.Before(*project.StartDate) {
		errs = append(errs, ValidationError{"end_date", "must not be before start_date"})
	}

	return errs
}

func ValidateMeetingDraft(draft *entity.MeetingDraft) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(draft.Title) == "" {
		errs = append(errs, ValidationError{"title", "is required"})
	}

	if strings.TrimSpace(draft.MeetingDate) == "" {
		errs = append(errs, ValidationError{"meeting_date", "is required"})
	} else if _, err := time.Parse(entity.MeetingDateLayout, draft.MeetingDate); err != nil {
		errs = append(errs, ValidationError{"meeting_date", "must be a valid date (YYYY-MM-DD)"})
	}

	if strings.TrimSpace(draft.MeetingTime) == "" {
		errs = append(errs, ValidationError{"meeting_time", "is required"})
	} else if _, err := time.Parse(entity.MeetingTimeLayout, draft.MeetingTime); err != nil {
		errs = append(errs, ValidationError{"meeting_time", "must be a valid time (HH:MM)"})
	}

	if draft.Duration < 0 {
		errs = append(errs, ValidationError{"duration", "must not be negative"})
	}

	if draft.Platform != "" && !validPlatforms[draft.Platform] {
		errs = append(errs, ValidationError{"platform", "must be google-meet, zoom, teams or jitsi"})
	}

	return errs
}

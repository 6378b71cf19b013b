package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead categories
const (
	CategoryIndividual    = "individual"
	CategoryStartup       = "startup"
	CategorySmallBusiness = "small-business"
	CategoryEnterprise    = "enterprise"
	CategoryGovernment    = "government"
)

// Budget range brackets
const (
	BudgetRangeLow        = "low"
	BudgetRangeMedium     = "medium"
	BudgetRangeHigh       = "high"
	BudgetRangeEnterprise = "enterprise"
)

// Lead statuses
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusClosed    = "closed"
)

type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Company     string    `json:"company,omitempty"`
	Category    string    `json:"category"`
	SalaryMin   *float64  `json:"salary_min,omitempty"`
	SalaryMax   *float64  `json:"salary_max,omitempty"`
	BudgetRange string    `json:"budget_range"`
	Industry    string    `json:"industry,omitempty"`
	Location    string    `json:"location,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"` // new, contacted, qualified, closed
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewLead applies the same defaults the capture form relies on.
func NewLead(name, email string) *Lead {
	return &Lead{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Category:    CategoryIndividual,
		BudgetRange: BudgetRangeLow,
		Status:      LeadStatusNew,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// LeadFilter narrows List queries. Zero values mean "no filter".
type LeadFilter struct {
	BudgetRange string
	Category    string
	Industry    string
	MinSalary   *float64
	MaxSalary   *float64
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
}

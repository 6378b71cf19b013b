package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

// Project statuses
const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on-hold"
	ProjectStatusCompleted = "completed"
)

type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ClientName  string     `json:"client_name"`
	Budget      float64    `json:"budget"`
	Status      string     `json:"status"` // planning, active, on-hold, completed
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewProject(name, clientName string, budget float64) *Project {
	return &Project{
		ID:         uuid.New().String(),
		Name:       name,
		ClientName: clientName,
		Budget:     budget,
		Status:     ProjectStatusPlanning,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

type ProjectRepositoryInterface interface {
	Create(ctx context.Context, project *Project) error
	List(ctx context.Context) ([]*Project, error)
	FindByID(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

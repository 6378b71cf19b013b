package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, name, email,
	COALESCE(phone, ''), COALESCE(company, ''), category,
	salary_min, salary_max, budget_range,
	COALESCE(industry, ''), COALESCE(location, ''), COALESCE(notes, ''),
	status, created_at, updated_at
`

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (
			id, name, email, phone, company, category,
			salary_min, salary_max, budget_range,
			industry, location, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''), $13, $14, $15)
	`

	_, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Category,
		lead.SalaryMin, lead.SalaryMax, lead.BudgetRange,
		lead.Industry, lead.Location, lead.Notes, lead.Status,
		lead.CreatedAt, lead.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// List applies the optional filters and returns newest leads first.
func (r *LeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE 1=1`
	var args []interface{}

	if filter.BudgetRange != "" {
		args = append(args, filter.BudgetRange)
		query += fmt.Sprintf(" AND budget_range = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Industry != "" {
		args = append(args, "%"+filter.Industry+"%")
		query += fmt.Sprintf(" AND industry ILIKE $%d", len(args))
	}
	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		query += fmt.Sprintf(" AND salary_min >= $%d", len(args))
	}
	if filter.MaxSalary != nil {
		args = append(args, *filter.MaxSalary)
		query += fmt.Sprintf(" AND salary_max <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrLeadNotFound
	}
	return lead, err
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			name = $2, email = $3, phone = NULLIF($4, ''), company = NULLIF($5, ''),
			category = $6, salary_min = $7, salary_max = $8, budget_range = $9,
			industry = NULLIF($10, ''), location = NULLIF($11, ''), notes = NULLIF($12, ''),
			status = $13, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.Company,
		lead.Category, lead.SalaryMin, lead.SalaryMax, lead.BudgetRange,
		lead.Industry, lead.Location, lead.Notes, lead.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	return requireRow(res, entity.ErrLeadNotFound)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email,
		&lead.Phone, &lead.Company, &lead.Category,
		&lead.SalaryMin, &lead.SalaryMax, &lead.BudgetRange,
		&lead.Industry, &lead.Location, &lead.Notes,
		&lead.Status, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func requireRow(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

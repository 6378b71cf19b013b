package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xavierca1/ansluta-crm/internal/entity"
)

type MeetingRepository struct {
	DB *sql.DB
}

func NewMeetingRepository(db *sql.DB) *MeetingRepository {
	return &MeetingRepository{DB: db}
}

const meetingColumns = `
	id, title, COALESCE(description, ''), COALESCE(attendees, ''),
	meeting_date, meeting_time, duration, COALESCE(meeting_link, ''),
	platform, COALESCE(google_event_id, ''), status, created_at, updated_at
`

func (r *MeetingRepository) Create(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		INSERT INTO meetings (
			id, title, description, attendees, meeting_date, meeting_time,
			duration, meeting_link, platform, google_event_id, status, created_at, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''), $9, NULLIF($10, ''), $11, $12, $13)
	`

	_, err := r.DB.ExecContext(ctx, query,
		meeting.ID, meeting.Title, meeting.Description, meeting.Attendees,
		meeting.MeetingDate, meeting.MeetingTime, meeting.Duration,
		meeting.MeetingLink, meeting.Platform, meeting.GoogleEventID,
		meeting.Status, meeting.CreatedAt, meeting.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

// List returns meetings soonest first, the order the meetings screen shows.
func (r *MeetingRepository) List(ctx context.Context) ([]*entity.Meeting, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+meetingColumns+` FROM meetings ORDER BY meeting_date ASC, meeting_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*entity.Meeting
	for rows.Next() {
		meeting, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}
	return meetings, rows.Err()
}

func (r *MeetingRepository) FindByID(ctx context.Context, id string) (*entity.Meeting, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id)

	meeting, err := scanMeeting(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrMeetingNotFound
	}
	return meeting, err
}

func (r *MeetingRepository) Update(ctx context.Context, meeting *entity.Meeting) error {
	query := `
		UPDATE meetings SET
			title = $2, description = NULLIF($3, ''), attendees = NULLIF($4, ''),
			meeting_date = $5, meeting_time = $6, duration = $7,
			meeting_link = NULLIF($8, ''), platform = $9, status = $10, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query,
		meeting.ID, meeting.Title, meeting.Description, meeting.Attendees,
		meeting.MeetingDate, meeting.MeetingTime, meeting.Duration,
		meeting.MeetingLink, meeting.Platform, meeting.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update meeting: %w", err)
	}
	return requireRow(res, entity.ErrMeetingNotFound)
}

func (r *MeetingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return requireRow(res, entity.ErrMeetingNotFound)
}

func (r *MeetingRepository) SetGoogleEvent(ctx context.Context, id, eventID, meetingLink string) error {
	query := `
		UPDATE meetings SET
			google_event_id = NULLIF($2, ''), meeting_link = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.DB.ExecContext(ctx, query, id, eventID, meetingLink)
	if err != nil {
		return fmt.Errorf("failed to store google event: %w", err)
	}
	return requireRow(res, entity.ErrMeetingNotFound)
}

func scanMeeting(row rowScanner) (*entity.Meeting, error) {
	var meeting entity.Meeting
	err := row.Scan(
		&meeting.ID, &meeting.Title, &meeting.Description, &meeting.Attendees,
		&meeting.MeetingDate, &meeting.MeetingTime, &meeting.Duration,
		&meeting.MeetingLink, &meeting.Platform, &meeting.GoogleEventID,
		&meeting.Status, &meeting.CreatedAt, &meeting.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

package worker

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// MeetingCompletionWorker marks scheduled meetings whose end time has
// passed as completed, so the meetings screen stays honest without
// anyone clicking through old entries.
type MeetingCompletionWorker struct {
	db           *sql.DB
	tickInterval time.Duration
}

func NewMeetingCompletionWorker(db *sql.DB) *MeetingCompletionWorker {
	return &MeetingCompletionWorker{
		db:           db,
		tickInterval: 1 * time.Minute,
	}
}

func (w *MeetingCompletionWorker) Start(ctx context.Context) {
	log.Println("🕒 Meeting completion worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.completePastMeetings(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Meeting completion worker stopped")
			return
		case <-ticker.C:
			w.completePastMeetings(ctx)
		}
	}
}

func (w *MeetingCompletionWorker) completePastMeetings(ctx context.Context) {
	query := `
		UPDATE meetings
		SET
			status = 'completed',
			updated_at = NOW()
		WHERE
			status = 'scheduled'
			AND (meeting_date::date + meeting_time::time + (duration || ' minutes')::interval) < NOW()
		RETURNING id, title
	`

	rows, err := w.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Failed to query past meetings: %v", err)
		return
	}
	defer rows.Close()

	completed := 0
	for rows.Next() {
		var id, title string
		if err := rows.Scan(&id, &title); err != nil {
			log.Printf("⚠️ Failed to scan completed meeting: %v", err)
			continue
		}
		log.Printf("⏱️ Meeting completed: id=%s title=%q", id, title)
		completed++
	}

	if completed > 0 {
		log.Printf("✅ %d meeting(s) marked as completed", completed)
	}
}

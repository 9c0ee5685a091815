package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo using a SQLite database.
type SQLiteProgressRepo struct {
	db db.DBTX
}

// NewSQLiteProgressRepo creates a new SQLiteProgressRepo.
func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

// MarkComplete records completion. Marking an already completed resource
// keeps the original completion time.
func (r *SQLiteProgressRepo) MarkComplete(ctx context.Context, p *domain.ResourceProgress) error {
	completed := p.CompletedAt
	if completed.IsZero() {
		completed = nowUTC()
	}
	query := `INSERT INTO resource_progress (user_id, resource_id, completed_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, resource_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, p.UserID, p.ResourceID, formatTime(completed)); err != nil {
		return fmt.Errorf("marking resource complete: %w", err)
	}
	return nil
}

// Clear removes the completion record. Clearing a resource that was never
// completed is not an error.
func (r *SQLiteProgressRepo) Clear(ctx context.Context, userID, resourceID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM resource_progress WHERE user_id = ? AND resource_id = ?`, userID, resourceID)
	if err != nil {
		return fmt.Errorf("clearing progress: %w", err)
	}
	return nil
}

func (r *SQLiteProgressRepo) ListCompleted(ctx context.Context, userID string) ([]domain.ResourceProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, resource_id, completed_at FROM resource_progress
		WHERE user_id = ? ORDER BY completed_at, resource_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	defer rows.Close()

	var out []domain.ResourceProgress
	for rows.Next() {
		var p domain.ResourceProgress
		var completedAt string
		if err := rows.Scan(&p.UserID, &p.ResourceID, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning progress: %w", err)
		}
		if p.CompletedAt, err = parseTime("completed_at", completedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress: %w", err)
	}
	return out, nil
}

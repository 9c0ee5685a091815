package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/domain"
)

// resourceColumns is the canonical SELECT column list for content_resources.
const resourceColumns = `id, type, fields, created_by_id, created_at, updated_at`

// SQLiteResourceRepo implements ResourceRepo using a SQLite database.
type SQLiteResourceRepo struct {
	db db.DBTX
}

// NewSQLiteResourceRepo creates a new SQLiteResourceRepo.
func NewSQLiteResourceRepo(conn db.DBTX) *SQLiteResourceRepo {
	return &SQLiteResourceRepo{db: conn}
}

func (r *SQLiteResourceRepo) Create(ctx context.Context, res *domain.ContentResource) error {
	query := `INSERT INTO content_resources (id, type, fields, created_by_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.Type,
		encodeFields(res.Fields),
		res.CreatedByID,
		formatTime(res.CreatedAt),
		formatTime(res.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting content resource: %w", err)
	}
	return nil
}

func (r *SQLiteResourceRepo) GetByID(ctx context.Context, id string) (*domain.ContentResource, error) {
	query := `SELECT ` + resourceColumns + ` FROM content_resources WHERE id = ?`
	return r.scanResource(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug returns the oldest resource whose fields.slug equals slug.
// Slugs are not unique; the tie-break keeps lookups stable.
func (r *SQLiteResourceRepo) GetBySlug(ctx context.Context, slug string) (*domain.ContentResource, error) {
	query := `SELECT ` + resourceColumns + ` FROM content_resources
		WHERE json_extract(fields, '$.slug') = ?
		ORDER BY created_at, id LIMIT 1`
	return r.scanResource(r.db.QueryRowContext(ctx, query, slug))
}

// List returns resources ordered by creation time. An empty resourceType
// lists every type.
func (r *SQLiteResourceRepo) List(ctx context.Context, resourceType string) ([]*domain.ContentResource, error) {
	query := `SELECT ` + resourceColumns + ` FROM content_resources`
	var args []any
	if resourceType != "" {
		query += ` WHERE type = ?`
		args = append(args, resourceType)
	}
	query += ` ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing content resources: %w", err)
	}
	defer rows.Close()

	var out []*domain.ContentResource
	for rows.Next() {
		res, err := scanResourceRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating content resources: %w", err)
	}
	return out, nil
}

func (r *SQLiteResourceRepo) Update(ctx context.Context, res *domain.ContentResource) error {
	query := `UPDATE content_resources SET type = ?, fields = ?, created_by_id = ?, updated_at = ?
		WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query,
		res.Type,
		encodeFields(res.Fields),
		res.CreatedByID,
		formatTime(res.UpdatedAt),
		res.ID,
	)
	if err != nil {
		return fmt.Errorf("updating content resource: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("content resource %s: %w", res.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteResourceRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM content_resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting content resource: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("content resource %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteResourceRepo) scanResource(row *sql.Row) (*domain.ContentResource, error) {
	res, err := scanResourceRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("content resource: %w", ErrNotFound)
		}
		return nil, err
	}
	return res, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResourceRow(row rowScanner, extra ...any) (*domain.ContentResource, error) {
	var res domain.ContentResource
	var fieldsStr, createdAtStr, updatedAtStr string

	dest := append([]any{&res.ID, &res.Type, &fieldsStr, &res.CreatedByID, &createdAtStr, &updatedAtStr}, extra...)
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning content resource: %w", err)
	}
	return populateResource(&res, fieldsStr, createdAtStr, updatedAtStr)
}

func populateResource(res *domain.ContentResource, fieldsStr, createdAtStr, updatedAtStr string) (*domain.ContentResource, error) {
	var err error
	if res.Fields, err = decodeFields(fieldsStr); err != nil {
		return nil, fmt.Errorf("content resource %s: %w", res.ID, err)
	}
	if res.CreatedAt, err = parseTime("created_at", createdAtStr); err != nil {
		return nil, err
	}
	if res.UpdatedAt, err = parseTime("updated_at", updatedAtStr); err != nil {
		return nil, err
	}
	return res, nil
}

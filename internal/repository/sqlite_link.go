package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/domain"
)

// SQLiteLinkRepo implements LinkRepo over content_resource_resources.
type SQLiteLinkRepo struct {
	db db.DBTX
}

// NewSQLiteLinkRepo creates a new SQLiteLinkRepo.
func NewSQLiteLinkRepo(conn db.DBTX) *SQLiteLinkRepo {
	return &SQLiteLinkRepo{db: conn}
}

// Upsert inserts the link or moves an existing one to the new position.
func (r *SQLiteLinkRepo) Upsert(ctx context.Context, l *domain.ResourceLink) error {
	query := `INSERT INTO content_resource_resources (resource_of_id, resource_id, position, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(resource_of_id, resource_id) DO UPDATE SET position = excluded.position`
	_, err := r.db.ExecContext(ctx, query,
		l.ResourceOfID,
		l.ResourceID,
		l.Position,
		formatTime(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting resource link: %w", err)
	}
	return nil
}

func (r *SQLiteLinkRepo) Delete(ctx context.Context, parentID, childID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM content_resource_resources WHERE resource_of_id = ? AND resource_id = ?`,
		parentID, childID)
	if err != nil {
		return fmt.Errorf("deleting resource link: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("resource link %s -> %s: %w", parentID, childID, ErrNotFound)
	}
	return nil
}

// ListChildren returns the children of parentID in ascending position.
func (r *SQLiteLinkRepo) ListChildren(ctx context.Context, parentID string) ([]LinkedResource, error) {
	byParent, err := r.ListChildrenOf(ctx, []string{parentID})
	if err != nil {
		return nil, err
	}
	return byParent[parentID], nil
}

// ListChildrenOf fetches the children of every parent in one query, grouped
// by parent id. Each group is in ascending position; equal positions fall
// back to the child id so ordering is deterministic.
func (r *SQLiteLinkRepo) ListChildrenOf(ctx context.Context, parentIDs []string) (map[string][]LinkedResource, error) {
	out := make(map[string][]LinkedResource, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	query := `SELECT c.id, c.type, c.fields, c.created_by_id, c.created_at, c.updated_at,
			l.resource_of_id, l.position, l.created_at
		FROM content_resource_resources l
		JOIN content_resources c ON c.id = l.resource_id
		WHERE l.resource_of_id IN (` + placeholders(len(parentIDs)) + `)
		ORDER BY l.resource_of_id, l.position, l.resource_id`
	rows, err := r.db.QueryContext(ctx, query, stringArgs(parentIDs)...)
	if err != nil {
		return nil, fmt.Errorf("listing child resources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lr LinkedResource
		var linkCreatedAt string
		res, err := scanResourceRow(rows, &lr.Link.ResourceOfID, &lr.Link.Position, &linkCreatedAt)
		if err != nil {
			return nil, err
		}
		lr.Resource = *res
		lr.Link.ResourceID = res.ID
		if lr.Link.CreatedAt, err = parseTime("link created_at", linkCreatedAt); err != nil {
			return nil, err
		}
		out[lr.Link.ResourceOfID] = append(out[lr.Link.ResourceOfID], lr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating child resources: %w", err)
	}
	return out, nil
}

// ListParents returns every link pointing at childID.
func (r *SQLiteLinkRepo) ListParents(ctx context.Context, childID string) ([]domain.ResourceLink, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT resource_of_id, resource_id, position, created_at
		FROM content_resource_resources WHERE resource_id = ? ORDER BY resource_of_id`, childID)
	if err != nil {
		return nil, fmt.Errorf("listing parent links: %w", err)
	}
	defer rows.Close()

	var out []domain.ResourceLink
	for rows.Next() {
		var l domain.ResourceLink
		var createdAt string
		if err := rows.Scan(&l.ResourceOfID, &l.ResourceID, &l.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning parent link: %w", err)
		}
		if l.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parent links: %w", err)
	}
	return out, nil
}

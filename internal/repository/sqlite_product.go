package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/coursenav/internal/db"
	"github.com/alexanderramin/coursenav/internal/domain"
)

const productColumns = `p.id, p.name, p.type, p.status, p.fields, p.created_at, p.updated_at`

// SQLiteProductRepo implements ProductRepo using a SQLite database.
type SQLiteProductRepo struct {
	db db.DBTX
}

// NewSQLiteProductRepo creates a new SQLiteProductRepo.
func NewSQLiteProductRepo(conn db.DBTX) *SQLiteProductRepo {
	return &SQLiteProductRepo{db: conn}
}

func (r *SQLiteProductRepo) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (id, name, type, status, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		string(p.Type),
		string(p.Status),
		encodeFields(p.Fields),
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *SQLiteProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = ?`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product: %w", ErrNotFound)
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProductRepo) List(ctx context.Context, includeArchived bool) ([]*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p`
	if !includeArchived {
		query += ` WHERE p.status = 'active'`
	}
	query += ` ORDER BY p.created_at, p.id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return out, nil
}

// AttachResource places resourceID in the product at position. Re-attaching
// moves the existing association.
func (r *SQLiteProductRepo) AttachResource(ctx context.Context, productID, resourceID string, position int) error {
	query := `INSERT INTO content_resource_products (product_id, resource_id, position)
		VALUES (?, ?, ?)
		ON CONFLICT(product_id, resource_id) DO UPDATE SET position = excluded.position`
	if _, err := r.db.ExecContext(ctx, query, productID, resourceID, position); err != nil {
		return fmt.Errorf("attaching resource to product: %w", err)
	}
	return nil
}

// ListByResource returns every product that contains resourceID.
func (r *SQLiteProductRepo) ListByResource(ctx context.Context, resourceID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
		JOIN content_resource_products crp ON crp.product_id = p.id
		WHERE crp.resource_id = ?
		ORDER BY p.created_at, p.id`
	rows, err := r.db.QueryContext(ctx, query, resourceID)
	if err != nil {
		return nil, fmt.Errorf("listing products by resource: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}
	return out, nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var typ, status, fieldsStr, createdAt, updatedAt string
	if err := row.Scan(&p.ID, &p.Name, &typ, &status, &fieldsStr, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning product: %w", err)
	}
	p.Type = domain.ProductType(typ)
	p.Status = domain.ProductStatus(status)

	var err error
	if p.Fields, err = decodeFields(fieldsStr); err != nil {
		return nil, fmt.Errorf("product %s: %w", p.ID, err)
	}
	if p.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

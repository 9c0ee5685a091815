package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS content_resources (
		id            TEXT PRIMARY KEY,
		type          TEXT NOT NULL,
		fields        TEXT NOT NULL DEFAULT '{}' CHECK(json_valid(fields)),
		created_by_id TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_content_resources_type ON content_resources(type)`,
	`CREATE INDEX IF NOT EXISTS idx_content_resources_slug ON content_resources(json_extract(fields, '$.slug'))`,

	`CREATE TABLE IF NOT EXISTS content_resource_resources (
		resource_of_id TEXT NOT NULL REFERENCES content_resources(id) ON DELETE CASCADE,
		resource_id    TEXT NOT NULL REFERENCES content_resources(id) ON DELETE CASCADE,
		position       INTEGER NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		PRIMARY KEY (resource_of_id, resource_id),
		CHECK(resource_of_id != resource_id)
	)`,

	`DROP INDEX IF EXISTS idx_crr_parent_position`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_crr_sibling_position ON content_resource_resources(resource_of_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_crr_child ON content_resource_resources(resource_id)`,

	`CREATE TABLE IF NOT EXISTS products (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'self-paced',
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','archived')),
		fields     TEXT NOT NULL DEFAULT '{}' CHECK(json_valid(fields)),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS content_resource_products (
		product_id  TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		resource_id TEXT NOT NULL REFERENCES content_resources(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (product_id, resource_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_crp_resource ON content_resource_products(resource_id)`,

	`CREATE TABLE IF NOT EXISTS resource_progress (
		user_id      TEXT NOT NULL,
		resource_id  TEXT NOT NULL REFERENCES content_resources(id) ON DELETE CASCADE,
		completed_at TEXT NOT NULL,
		PRIMARY KEY (user_id, resource_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resource_progress_user ON resource_progress(user_id)`,
}

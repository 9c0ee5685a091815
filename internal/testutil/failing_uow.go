package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"github.com/alexanderramin/coursenav/internal/db"
)

// FaultyUoW runs transactions against DB and fails the FailOn-th write whose
// SQL contains Match (every write when Match is empty), returning Err in
// place of executing it. Reads pass through untouched. Statements records
// the SQL of every write attempted, including the one that failed.
type FaultyUoW struct {
	DB     *sql.DB
	Match  string
	FailOn int
	Err    error

	mu         sync.Mutex
	matched    int
	statements []string
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(ctx, &faultyTx{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Statements returns the writes attempted so far, oldest first.
func (u *FaultyUoW) Statements() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.statements...)
}

func (u *FaultyUoW) shouldFail(query string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.statements = append(u.statements, strings.Join(strings.Fields(query), " "))
	if u.Match != "" && !strings.Contains(query, u.Match) {
		return false
	}
	u.matched++
	return u.matched == u.FailOn
}

type faultyTx struct {
	db.DBTX
	uow *FaultyUoW
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.uow.shouldFail(query) {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

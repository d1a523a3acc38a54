package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExecutor struct {
	name string
}

func (f *fakeExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeExecutor) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

type fakeTx struct {
	fakeExecutor
}

func (f *fakeTx) Commit() error   { return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	db := &fakeExecutor{name: "db"}

	assert.False(t, IsInTransaction(context.Background()))
	assert.Same(t, db, GetExecutor(context.Background(), db))
}

func TestGetExecutor_WithTransaction(t *testing.T) {
	db := &fakeExecutor{name: "db"}
	tx := &fakeTx{fakeExecutor{name: "tx"}}

	ctx := WithTx(context.Background(), tx)

	assert.True(t, IsInTransaction(ctx))
	assert.Same(t, tx, GetExecutor(ctx, db))
}

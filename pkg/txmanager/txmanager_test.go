package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx     *fakeTx
	opts   *sql.TxOptions
	begins int
}

func (f *fakeBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	f.opts = opts
	return f.tx, nil
}

func TestDoSerializable_Commits(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, sql.LevelSerializable, beginner.opts.Isolation)
	assert.True(t, beginner.tx.committed)
	assert.False(t, beginner.tx.rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)
	fnErr := errors.New("boom")

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return fnErr
	})

	assert.ErrorIs(t, err, fnErr)
	assert.False(t, beginner.tx.committed)
	assert.True(t, beginner.tx.rolledBack)
}

func TestDo_CommitErrorKeepsCause(t *testing.T) {
	commitErr := errors.New("could not serialize access")
	beginner := &fakeBeginner{tx: &fakeTx{commitErr: commitErr}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.ErrorIs(t, err, commitErr)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Equal(t, 1, beginner.begins)
}

func TestDo_ErrorMapperAppliesToCommit(t *testing.T) {
	errConflict := errors.New("conflict")
	commitErr := errors.New("could not serialize access")
	beginner := &fakeBeginner{tx: &fakeTx{commitErr: commitErr}}
	mgr := NewTransactionManager(beginner, WithErrorMapper(func(err error) error {
		if errors.Is(err, commitErr) {
			return errConflict
		}
		return err
	}))

	err := mgr.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, errConflict)

	// ошибки, которые mapper не узнаёт, проходят без изменений
	beginner.tx = &fakeTx{}
	fnErr := errors.New("boom")
	err = mgr.Do(context.Background(), func(ctx context.Context) error { return fnErr })
	assert.ErrorIs(t, err, fnErr)
}

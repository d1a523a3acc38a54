package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/ptr"
)

// failingExecutor отдаёт заданную ошибку на каждый QueryContext
type failingExecutor struct {
	err error
}

func (e failingExecutor) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, e.err
}

func (e failingExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, e.err
}

func (e failingExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func dayFilter() domain.BookingsFilter {
	day := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	return domain.BookingsFilter{ProviderID: ptr.Ptr(int64(10)), StartDate: &day, EndDate: &day}
}

func TestList_ConcurrentWriteIsOverlap(t *testing.T) {
	for _, code := range []pq.ErrorCode{pgSerializationFailure, pgDeadlockDetected} {
		t.Run(string(code), func(t *testing.T) {
			repo := NewRepository(failingExecutor{err: &pq.Error{Code: code}})

			_, err := repo.List(context.Background(), dayFilter())
			assert.ErrorIs(t, err, ErrOverlap)
			assert.ErrorIs(t, err, domain.ErrConflict)
			assert.NotErrorIs(t, err, ErrExecQuery)
		})
	}
}

func TestList_OtherErrorIsExecQuery(t *testing.T) {
	repo := NewRepository(failingExecutor{err: errors.New("connection refused")})

	_, err := repo.List(context.Background(), dayFilter())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, domain.ErrConflict)
}

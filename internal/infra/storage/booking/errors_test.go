package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/txmanager"
)

func TestMapTxError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantConflict bool
	}{
		{
			name:         "serialization failure on commit",
			err:          fmt.Errorf("%w: %w", txmanager.ErrCommitTx, &pq.Error{Code: pgSerializationFailure}),
			wantConflict: true,
		},
		{
			name:         "exclusion constraint",
			err:          &pq.Error{Code: pgExclusionViolation, Constraint: bookingsNoOverlapConstr},
			wantConflict: true,
		},
		{
			name:         "deadlock",
			err:          &pq.Error{Code: pgDeadlockDetected},
			wantConflict: true,
		},
		{
			name: "other exclusion constraint",
			err:  &pq.Error{Code: pgExclusionViolation, Constraint: "blocked_intervals_no_overlap"},
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505"},
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapTxError(tt.err)
			assert.Equal(t, tt.wantConflict, errors.Is(got, domain.ErrConflict))
			if !tt.wantConflict {
				assert.Equal(t, tt.err, got)
			}
		})
	}
}

func TestMapTxError_KeepsAlreadyMapped(t *testing.T) {
	err := fmt.Errorf("%w: Create: %v", ErrOverlap, &pq.Error{Code: pgExclusionViolation})
	assert.Equal(t, err, MapTxError(err))
	assert.Nil(t, MapTxError(nil))
}

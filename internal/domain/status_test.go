package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTransition(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		from    BookingStatus
		to      BookingStatus
		wantErr bool
	}{
		{name: "provider confirms pending", role: RoleProvider, from: StatusPending, to: StatusConfirmed},
		{name: "user cannot confirm", role: RoleUser, from: StatusPending, to: StatusConfirmed, wantErr: true},
		{name: "user cancels pending", role: RoleUser, from: StatusPending, to: StatusCancelled},
		{name: "user cancels confirmed", role: RoleUser, from: StatusConfirmed, to: StatusCancelled},
		{name: "provider completes confirmed", role: RoleProvider, from: StatusConfirmed, to: StatusCompleted},
		{name: "provider marks no show", role: RoleProvider, from: StatusConfirmed, to: StatusNoShow},
		{name: "user cannot mark no show", role: RoleUser, from: StatusConfirmed, to: StatusNoShow, wantErr: true},
		{name: "provider cannot complete pending", role: RoleProvider, from: StatusPending, to: StatusCompleted, wantErr: true},
		{name: "completed is terminal for user", role: RoleUser, from: StatusCompleted, to: StatusConfirmed, wantErr: true},
		{name: "completed is terminal for provider", role: RoleProvider, from: StatusCompleted, to: StatusConfirmed, wantErr: true},
		{name: "admin forces pending to completed", role: RoleAdmin, from: StatusPending, to: StatusCompleted},
		{name: "admin forces confirmed back to pending", role: RoleAdmin, from: StatusConfirmed, to: StatusPending},
		{name: "admin cannot leave terminal state", role: RoleAdmin, from: StatusCancelled, to: StatusPending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTransition(tt.role, tt.from, tt.to)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTransition)

			var transitionErr *InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, tt.from, transitionErr.From)
			assert.Equal(t, tt.to, transitionErr.To)
		})
	}
}

func TestCheckTransition_UnknownStatus(t *testing.T) {
	err := CheckTransition(RoleAdmin, StatusPending, BookingStatus("archived"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())

	for _, s := range ActiveStatuses {
		assert.True(t, s.IsActive(), s)
	}
	for _, s := range InactiveStatuses {
		assert.False(t, s.IsActive(), s)
	}
}

func TestBooking_ApplyStatus(t *testing.T) {
	reason := "pet is sick"
	b := &Booking{Status: StatusConfirmed}

	b.ApplyStatus(StatusCancelled, CancelledByUser, &reason)
	assert.Equal(t, StatusCancelled, b.Status)
	require.NotNil(t, b.CancellationBy)
	assert.Equal(t, CancelledByUser, *b.CancellationBy)
	assert.Equal(t, &reason, b.CancellationReason)

	b.ApplyStatus(StatusPending, CancelledByAdmin, &reason)
	assert.Nil(t, b.CancellationBy)
	assert.Nil(t, b.CancellationReason)
}

func TestParseBookingStatus(t *testing.T) {
	s, err := ParseBookingStatus("no_show")
	require.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)

	_, err = ParseBookingStatus("done")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

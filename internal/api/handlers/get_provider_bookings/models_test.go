package get_provider_bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
)

func TestToServiceRequest(t *testing.T) {
	actor := domain.Actor{UserID: 20, Role: domain.RoleProvider}

	t.Run("single day", func(t *testing.T) {
		req, err := ToServiceRequest(actor, 10, "2030-10-14", "2030-01-01", "", "", "")
		require.NoError(t, err)
		require.NotNil(t, req.StartDate)
		require.NotNil(t, req.EndDate)
		assert.Equal(t, *req.StartDate, *req.EndDate)
		assert.Equal(t, "2030-10-14", req.StartDate.Format(domain.DateFormat))
	})

	t.Run("period with filters", func(t *testing.T) {
		req, err := ToServiceRequest(actor, 10, "", "2030-10-01", "2030-10-31", "confirmed", "true")
		require.NoError(t, err)
		assert.Equal(t, "2030-10-01", req.StartDate.Format(domain.DateFormat))
		assert.Equal(t, "2030-10-31", req.EndDate.Format(domain.DateFormat))
		require.NotNil(t, req.Status)
		assert.Equal(t, "confirmed", *req.Status)
		assert.True(t, req.IncludeInactive)
		assert.Equal(t, actor, req.Actor)
	})

	t.Run("no filters", func(t *testing.T) {
		req, err := ToServiceRequest(actor, 10, "", "", "", "", "")
		require.NoError(t, err)
		assert.Nil(t, req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.Nil(t, req.Status)
		assert.False(t, req.IncludeInactive)
	})

	for _, tc := range []struct{ date, start, end, include string }{
		{date: "14-10-2030"},
		{start: "yesterday"},
		{end: "2030-13-01"},
		{include: "maybe"},
	} {
		_, err := ToServiceRequest(actor, 10, tc.date, tc.start, tc.end, "", tc.include)
		assert.Error(t, err)
	}
}

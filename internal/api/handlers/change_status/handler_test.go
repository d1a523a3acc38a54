package change_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	changeStatus "github.com/m04kA/PetCare-BookingService/internal/usecase/change_status"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

type fakeUseCase struct {
	got *changeStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *changeStatus.Request) (*domain.Booking, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: req.BookingID, Status: req.Status, StartTime: "10:00", EndTime: "10:30"}, nil
}

func serve(uc ChangeStatusUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}/status", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/5/status", strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, "20")
	req.Header.Set(middleware.HeaderUserRole, "provider")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Cancel(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"status":"cancelled","cancellationReason":"sick"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, int64(5), uc.got.BookingID)
	assert.Equal(t, domain.StatusCancelled, uc.got.Status)
	assert.Equal(t, domain.RoleProvider, uc.got.Actor.Role)
	require.NotNil(t, uc.got.CancellationReason)
	assert.Equal(t, "sick", *uc.got.CancellationReason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "unknown status", body: `{"status":"archived"}`, wantStatus: http.StatusBadRequest},
		{name: "not found", body: `{"status":"confirmed"}`, err: changeStatus.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "ownership", body: `{"status":"confirmed"}`, err: domain.ErrOwnership, wantStatus: http.StatusForbidden},
		{
			name: "terminal", body: `{"status":"confirmed"}`,
			err:        &domain.InvalidTransitionError{From: domain.StatusCompleted, To: domain.StatusConfirmed},
			wantStatus: http.StatusConflict,
		},
		{name: "internal", body: `{"status":"confirmed"}`, err: changeStatus.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

package get_available_slots

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	slotsService "github.com/m04kA/PetCare-BookingService/internal/service/slots"
	getAvailableSlots "github.com/m04kA/PetCare-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

type fakeUseCase struct {
	got *getAvailableSlots.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailableSlots.Response{
		ProviderID:             req.ProviderID,
		Date:                   req.Date,
		ServiceDurationMinutes: req.ServiceDurationMinutes,
		Slots: []getAvailableSlots.Slot{
			{StartTime: "09:00", EndTime: "09:30", IsAvailable: true},
			{StartTime: "09:30", EndTime: "10:00", IsAvailable: false},
		},
	}, nil
}

func newRouter(uc GetAvailableSlotsUseCase) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.OptionalAuth)
	r.HandleFunc("/providers/{providerId}/available-slots", NewHandler(uc, logger.NewNop()).Handle)
	return r
}

func TestHandle_AnonymousCustomerView(t *testing.T) {
	uc := &fakeUseCase{}
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/providers/10/available-slots?date=2030-10-14&duration=30", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, domain.RoleUser, uc.got.Actor.Role)
	assert.False(t, uc.got.IncludeUnavailable)
	assert.Equal(t, time.Date(2030, 10, 14, 0, 0, 0, 0, time.UTC), uc.got.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2030-10-14", resp.Date)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.False(t, resp.Slots[1].IsAvailable)
}

func TestHandle_AdminFullView(t *testing.T) {
	uc := &fakeUseCase{}
	req := httptest.NewRequest(http.MethodGet, "/providers/10/available-slots?date=2030-10-14&duration=30&view=all", nil)
	req.Header.Set(middleware.HeaderUserID, "1")
	req.Header.Set(middleware.HeaderUserRole, "admin")
	rec := httptest.NewRecorder()

	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.IncludeUnavailable)
	assert.True(t, uc.got.Actor.IsAdmin())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{name: "bad provider", url: "/providers/x/available-slots?date=2030-10-14&duration=30", wantStatus: http.StatusBadRequest},
		{name: "missing date", url: "/providers/10/available-slots?duration=30", wantStatus: http.StatusBadRequest},
		{name: "bad date", url: "/providers/10/available-slots?date=tomorrow&duration=30", wantStatus: http.StatusBadRequest},
		{name: "missing duration", url: "/providers/10/available-slots?date=2030-10-14", wantStatus: http.StatusBadRequest},
		{
			name: "full view forbidden", url: "/providers/10/available-slots?date=2030-10-14&duration=30&view=all",
			err: getAvailableSlots.ErrFullViewForbidden, wantStatus: http.StatusForbidden,
		},
		{
			name: "unknown provider", url: "/providers/10/available-slots?date=2030-10-14&duration=30",
			err: fmt.Errorf("%w: id=10", slotsService.ErrUnknownProvider), wantStatus: http.StatusBadRequest,
		},
		{
			name: "duration out of range", url: "/providers/10/available-slots?date=2030-10-14&duration=1",
			err: getAvailableSlots.ErrInvalidInput, wantStatus: http.StatusBadRequest,
		},
		{
			name: "repository", url: "/providers/10/available-slots?date=2030-10-14&duration=30",
			err: domain.ErrRepository, wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newRouter(&fakeUseCase{err: tt.err}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

package delete_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PetCare-BookingService/internal/api/middleware"
	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/availability"
	"github.com/m04kA/PetCare-BookingService/pkg/logger"
)

type fakeService struct {
	calls []string
	err   error
}

func (f *fakeService) DeleteWindow(_ context.Context, _ domain.Actor, _, _ int64) error {
	f.calls = append(f.calls, "window")
	return f.err
}

func (f *fakeService) DeleteBlockedDate(_ context.Context, _ domain.Actor, _, _ int64) error {
	f.calls = append(f.calls, "date")
	return f.err
}

func (f *fakeService) DeleteBlockedInterval(_ context.Context, _ domain.Actor, _, _ int64) error {
	f.calls = append(f.calls, "interval")
	return f.err
}

func newRouter(svc AvailabilityService) *mux.Router {
	log := logger.NewNop()
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/providers/{providerId}/availability/{windowId}", NewWindowHandler(svc, log).Handle)
	r.HandleFunc("/providers/{providerId}/blocked-dates/{blockId}", NewBlockedDateHandler(svc, log).Handle)
	r.HandleFunc("/providers/{providerId}/blocked-intervals/{blockId}", NewBlockedIntervalHandler(svc, log).Handle)
	return r
}

func doDelete(r http.Handler, url string) int {
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	req.Header.Set(middleware.HeaderUserID, "20")
	req.Header.Set(middleware.HeaderUserRole, "provider")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestHandle_RoutesToService(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	assert.Equal(t, http.StatusNoContent, doDelete(r, "/providers/10/availability/1"))
	assert.Equal(t, http.StatusNoContent, doDelete(r, "/providers/10/blocked-dates/2"))
	assert.Equal(t, http.StatusNoContent, doDelete(r, "/providers/10/blocked-intervals/3"))
	assert.Equal(t, []string{"window", "date", "interval"}, svc.calls)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{name: "bad id", url: "/providers/10/availability/abc", wantStatus: http.StatusBadRequest},
		{name: "bad provider", url: "/providers/0/blocked-dates/1", wantStatus: http.StatusBadRequest},
		{name: "provider not found", url: "/providers/10/blocked-dates/1", err: availability.ErrProviderNotFound, wantStatus: http.StatusNotFound},
		{name: "block not found", url: "/providers/10/blocked-intervals/1", err: availability.ErrBlockNotFound, wantStatus: http.StatusNotFound},
		{name: "access denied", url: "/providers/10/availability/1", err: availability.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", url: "/providers/10/availability/1", err: availability.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, doDelete(newRouter(&fakeService{err: tt.err}), tt.url))
		})
	}
}

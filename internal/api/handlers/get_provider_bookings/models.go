package get_provider_bookings

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/internal/service/bookings/models"
)

// ToServiceRequest разбирает query параметры.
// date задаёт один день и имеет приоритет над startDate/endDate.
func ToServiceRequest(actor domain.Actor, providerID int64, date, startDate, endDate, status, includeInactive string) (*models.GetProviderBookingsRequest, error) {
	req := &models.GetProviderBookingsRequest{
		Actor:      actor,
		ProviderID: providerID,
	}

	if date != "" {
		day, err := time.Parse(domain.DateFormat, date)
		if err != nil {
			return nil, fmt.Errorf("date: %w", err)
		}
		req.StartDate = &day
		req.EndDate = &day
	} else {
		if startDate != "" {
			start, err := time.Parse(domain.DateFormat, startDate)
			if err != nil {
				return nil, fmt.Errorf("startDate: %w", err)
			}
			req.StartDate = &start
		}
		if endDate != "" {
			end, err := time.Parse(domain.DateFormat, endDate)
			if err != nil {
				return nil, fmt.Errorf("endDate: %w", err)
			}
			req.EndDate = &end
		}
	}

	if status != "" {
		req.Status = &status
	}

	if includeInactive != "" {
		include, err := strconv.ParseBool(includeInactive)
		if err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
		req.IncludeInactive = include
	}

	return req, nil
}

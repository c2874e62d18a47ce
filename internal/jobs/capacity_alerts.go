package jobs

import (
	"context"
	"log"

	"storemap/internal/models"
	"storemap/internal/repositories"
)

// CapacityAlertService periodically scans active locations and logs the
// ones whose utilization meets or exceeds the configured threshold.
type CapacityAlertService struct {
	locationRepo repositories.LocationRepository
	threshold    float64
}

type CapacityAlert struct {
	LocationID   int64
	Code         string
	Name         string
	Capacity     int
	UsedCapacity int
	Utilization  float64
}

func NewCapacityAlertService(locationRepo repositories.LocationRepository, threshold float64) *CapacityAlertService {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.9
	}
	return &CapacityAlertService{
		locationRepo: locationRepo,
		threshold:    threshold,
	}
}

func (a *CapacityAlertService) CheckUtilization(ctx context.Context) ([]CapacityAlert, error) {
	locations, _, err := a.locationRepo.List(ctx, models.LocationFilter{
		Status: models.StatusActive,
		Page:   1,
		Limit:  1000, // Get all, in practice should paginate
		SortBy: "id",
	})
	if err != nil {
		log.Printf("Failed to list locations for capacity check: %v", err)
		return nil, err
	}

	var alerts []CapacityAlert
	for _, location := range locations {
		if location.Capacity <= 0 {
			continue
		}
		utilization := float64(location.UsedCapacity) / float64(location.Capacity)
		if utilization >= a.threshold {
			alerts = append(alerts, CapacityAlert{
				LocationID:   location.ID,
				Code:         location.Code,
				Name:         location.Name,
				Capacity:     location.Capacity,
				UsedCapacity: location.UsedCapacity,
				Utilization:  utilization,
			})
		}
	}

	return alerts, nil
}

func (a *CapacityAlertService) LogCapacityAlerts(alerts []CapacityAlert) {
	if len(alerts) == 0 {
		log.Println("No capacity alerts to log")
		return
	}

	log.Printf("Capacity alerts (threshold %.0f%%):", a.threshold*100)
	for _, alert := range alerts {
		log.Printf("- Location '%s' (%s) at %d/%d units (%.0f%% utilized)",
			alert.Name,
			alert.Code,
			alert.UsedCapacity,
			alert.Capacity,
			alert.Utilization*100)
	}
}

// ScheduledCapacityCheck is the scheduler entry point.
func (a *CapacityAlertService) ScheduledCapacityCheck(ctx context.Context) error {
	log.Println("Starting scheduled capacity check")

	alerts, err := a.CheckUtilization(ctx)
	if err != nil {
		return err
	}

	a.LogCapacityAlerts(alerts)
	return nil
}

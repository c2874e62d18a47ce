package services

import (
	"context"
	"errors"

	"storemap/internal/apperrors"
	"storemap/internal/models"
	"storemap/internal/repositories"
)

type LocationService interface {
	List(ctx context.Context, filter models.LocationFilter) (*models.LocationPage, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	Create(ctx context.Context, fields *models.LocationCreate) (*models.Location, error)
	Update(ctx context.Context, id int64, fields *models.LocationUpdate) (*models.Location, error)
	Delete(ctx context.Context, id int64) error
}

type locationService struct {
	locationRepo repositories.LocationRepository
}

func NewLocationService(locationRepo repositories.LocationRepository) LocationService {
	return &locationService{
		locationRepo: locationRepo,
	}
}

func (s *locationService) List(ctx context.Context, filter models.LocationFilter) (*models.LocationPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = 10
	}
	if filter.Limit < 1 {
		filter.Limit = 1
	}

	locations, total, err := s.locationRepo.List(ctx, filter)
	if err != nil {
		return nil, apperrors.NewDatabase("list locations", err)
	}

	if locations == nil {
		locations = []*models.Location{}
	}

	return &models.LocationPage{
		Page:         filter.Page,
		Limit:        filter.Limit,
		TotalRecords: total,
		TotalPages:   (total + filter.Limit - 1) / filter.Limit,
		Data:         locations,
	}, nil
}

func (s *locationService) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewDatabase("get location", err)
	}
	return location, nil
}

func (s *locationService) Create(ctx context.Context, fields *models.LocationCreate) (*models.Location, error) {
	if fields.Code == "" {
		return nil, apperrors.NewValidation("Code is required")
	}
	if fields.Name == "" {
		return nil, apperrors.NewValidation("Name is required")
	}
	if fields.Type == "" {
		return nil, apperrors.NewValidation("Type is required")
	}
	if fields.Address == "" {
		return nil, apperrors.NewValidation("Address is required")
	}
	if fields.Capacity == nil {
		return nil, apperrors.NewValidation("Capacity is required")
	}
	if *fields.Capacity <= 0 {
		return nil, apperrors.NewValidation("Capacity must be greater than 0")
	}

	usedCapacity := 0
	if fields.UsedCapacity != nil {
		usedCapacity = *fields.UsedCapacity
	}
	if usedCapacity < 0 || usedCapacity > *fields.Capacity {
		return nil, apperrors.NewValidation("Invalid capacity values")
	}

	if fields.TemperatureControlled {
		if fields.MinTemperature == nil || fields.MaxTemperature == nil ||
			*fields.MinTemperature >= *fields.MaxTemperature {
			return nil, apperrors.NewValidation("Invalid temperature range")
		}
	} else if fields.MinTemperature != nil || fields.MaxTemperature != nil {
		return nil, apperrors.NewValidation("Temperature values not allowed when temperature control is disabled")
	}

	status := models.StatusActive
	if fields.Status != "" {
		if !models.ValidStatus(fields.Status) {
			return nil, apperrors.NewValidation("Invalid status")
		}
		status = fields.Status
	}

	location := &models.Location{
		Code:                  fields.Code,
		Name:                  fields.Name,
		Type:                  fields.Type,
		Address:               fields.Address,
		Capacity:              *fields.Capacity,
		UsedCapacity:          usedCapacity,
		Status:                status,
		TemperatureControlled: fields.TemperatureControlled,
		MinTemperature:        fields.MinTemperature,
		MaxTemperature:        fields.MaxTemperature,
	}

	created, err := s.locationRepo.Create(ctx, location)
	if err != nil {
		return nil, apperrors.NewDatabase("create location", err)
	}
	return created, nil
}

func (s *locationService) Update(ctx context.Context, id int64, fields *models.LocationUpdate) (*models.Location, error) {
	if fields.UsedCapacity != nil && *fields.UsedCapacity < 0 {
		return nil, apperrors.NewValidation("Used capacity cannot be negative")
	}

	// Only the values present in this request are compared; a usedCapacity
	// sent without capacity is not checked against the stored capacity.
	if fields.Capacity != nil && fields.UsedCapacity != nil && *fields.UsedCapacity > *fields.Capacity {
		return nil, apperrors.NewValidation("Used capacity cannot exceed capacity")
	}

	if fields.Capacity != nil && *fields.Capacity <= 0 {
		return nil, apperrors.NewValidation("Capacity must be greater than 0")
	}

	if fields.TemperatureControlled != nil {
		if *fields.TemperatureControlled {
			if fields.MinTemperature == nil || fields.MaxTemperature == nil ||
				*fields.MinTemperature >= *fields.MaxTemperature {
				return nil, apperrors.NewValidation("Invalid temperature range")
			}
		} else if fields.MinTemperature != nil || fields.MaxTemperature != nil {
			return nil, apperrors.NewValidation("Temperature values not allowed when temperature control is disabled")
		}
	}

	if fields.Status != nil && !models.ValidStatus(*fields.Status) {
		return nil, apperrors.NewValidation("Invalid status")
	}

	updated, err := s.locationRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, apperrors.NewDatabase("update location", err)
	}
	return updated, nil
}

func (s *locationService) Delete(ctx context.Context, id int64) error {
	err := s.locationRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return apperrors.NewDatabase("delete location", err)
	}
	return nil
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storemap/internal/apperrors"
	"storemap/internal/models"
	"storemap/internal/services"

	"github.com/labstack/echo/v4"
)

// LocationHandlers handles location-related HTTP requests
type LocationHandlers struct {
	locationService services.LocationService
}

// NewLocationHandlers creates a new location handlers instance
func NewLocationHandlers(locationService services.LocationService) *LocationHandlers {
	return &LocationHandlers{
		locationService: locationService,
	}
}

// ListLocationsRequest represents query parameters for listing locations
type ListLocationsRequest struct {
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
	Type   string `query:"type"`
	Status string `query:"status"`
	Search string `query:"search"`
	SortBy string `query:"sortBy"`
	Order  string `query:"order"`
}

// ListLocations handles getting a filtered, sorted, paginated page of locations
func (h *LocationHandlers) ListLocations(c echo.Context) error {
	var req ListLocationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	page, err := h.locationService.List(c.Request().Context(), models.LocationFilter{
		Type:   req.Type,
		Status: req.Status,
		Search: req.Search,
		Page:   req.Page,
		Limit:  req.Limit,
		SortBy: req.SortBy,
		Order:  req.Order,
	})
	if err != nil {
		return mapError(err, "Failed to fetch locations")
	}

	return c.JSON(http.StatusOK, page)
}

// GetLocation handles getting location details by ID
func (h *LocationHandlers) GetLocation(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return err
	}

	location, err := h.locationService.GetByID(c.Request().Context(), id)
	if err != nil {
		return mapError(err, "Failed to fetch location")
	}

	return c.JSON(http.StatusOK, location)
}

// CreateLocation handles creating a new location
func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	var req models.LocationCreate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	created, err := h.locationService.Create(c.Request().Context(), &req)
	if err != nil {
		return mapError(err, "Failed to create location")
	}

	return c.JSON(http.StatusCreated, created)
}

// UpdateLocation handles partially updating a location
func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return err
	}

	var req models.LocationUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	updated, err := h.locationService.Update(c.Request().Context(), id, &req)
	if err != nil {
		return mapError(err, "Failed to update location")
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteLocation handles deleting a location
func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	id, err := locationID(c)
	if err != nil {
		return err
	}

	if err := h.locationService.Delete(c.Request().Context(), id); err != nil {
		return mapError(err, "Failed to delete location")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Location deleted successfully",
	})
}

func locationID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid location ID")
	}
	return id, nil
}

// mapError translates service errors into HTTP responses. Anything outside
// the taxonomy is logged and reported with the operation-generic message.
func mapError(err error, fallback string) *echo.HTTPError {
	var validationErr *apperrors.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, apperrors.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Location not found")
	default:
		log.Printf("%s: %v", fallback, err)
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}

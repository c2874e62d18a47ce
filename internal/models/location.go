package models

import "time"

// Location statuses
const (
	StatusActive      = "ACTIVE"
	StatusMaintenance = "MAINTENANCE"
	StatusInactive    = "INACTIVE"
)

// ValidStatus reports whether s is one of the known location statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusInactive:
		return true
	}
	return false
}

type Location struct {
	ID                    int64     `json:"id" db:"id"`
	Code                  string    `json:"code" db:"code"`
	Name                  string    `json:"name" db:"name"`
	Type                  string    `json:"type" db:"type"`
	Address               string    `json:"address" db:"address"`
	Capacity              int       `json:"capacity" db:"capacity"`
	UsedCapacity          int       `json:"usedCapacity" db:"used_capacity"`
	Status                string    `json:"status" db:"status"`
	TemperatureControlled bool      `json:"temperatureControlled" db:"temperature_controlled"`
	MinTemperature        *float64  `json:"minTemperature" db:"min_temperature"`
	MaxTemperature        *float64  `json:"maxTemperature" db:"max_temperature"`
	UpdatedAt             time.Time `json:"updatedAt" db:"updated_at"`
}

// LocationCreate is the payload for creating a location. Pointer fields
// distinguish "absent" from zero values during validation.
type LocationCreate struct {
	Code                  string   `json:"code"`
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	Address               string   `json:"address"`
	Capacity              *int     `json:"capacity"`
	UsedCapacity          *int     `json:"usedCapacity"`
	Status                string   `json:"status"`
	TemperatureControlled bool     `json:"temperatureControlled"`
	MinTemperature        *float64 `json:"minTemperature"`
	MaxTemperature        *float64 `json:"maxTemperature"`
}

// LocationUpdate is a partial update payload. Nil fields keep the stored value.
type LocationUpdate struct {
	Name                  *string  `json:"name"`
	Type                  *string  `json:"type"`
	Address               *string  `json:"address"`
	Capacity              *int     `json:"capacity"`
	UsedCapacity          *int     `json:"usedCapacity"`
	Status                *string  `json:"status"`
	TemperatureControlled *bool    `json:"temperatureControlled"`
	MinTemperature        *float64 `json:"minTemperature"`
	MaxTemperature        *float64 `json:"maxTemperature"`
}

// LocationFilter carries list query parameters. SortBy and Order are
// validated against an allow-list before they reach SQL text.
type LocationFilter struct {
	Type   string
	Status string
	Search string
	Page   int
	Limit  int
	SortBy string
	Order  string
}

// LocationPage is the list response envelope.
type LocationPage struct {
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalRecords int         `json:"totalRecords"`
	TotalPages   int         `json:"totalPages"`
	Data         []*Location `json:"data"`
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storemap/internal/apperrors"
	"storemap/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repository needs. pgxmock
// satisfies it in tests.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type LocationRepository interface {
	List(ctx context.Context, filter models.LocationFilter) ([]*models.Location, int, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	Create(ctx context.Context, location *models.Location) (*models.Location, error)
	Update(ctx context.Context, id int64, fields *models.LocationUpdate) (*models.Location, error)
	Delete(ctx context.Context, id int64) error
}

type locationRepo struct {
	db Database
}

func NewLocationRepository(db Database) LocationRepository {
	return &locationRepo{db: db}
}

const locationColumns = "id, code, name, type, address, capacity, used_capacity, status, temperature_controlled, min_temperature, max_temperature, updated_at"

// Columns that may appear in ORDER BY. Anything else falls back to id;
// the sort identifier is interpolated into SQL text, so it must never come
// from the request unchecked.
var sortColumns = map[string]bool{
	"id":       true,
	"code":     true,
	"name":     true,
	"type":     true,
	"status":   true,
	"capacity": true,
}

func sortClause(sortBy, order string) string {
	column := "id"
	if sortColumns[sortBy] {
		column = sortBy
	}
	direction := "ASC"
	if strings.ToLower(order) == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, direction)
}

// buildPredicate returns the shared WHERE clause and its arguments. The data
// and count queries must use the identical predicate.
func buildPredicate(filter models.LocationFilter) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		where += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (code ILIKE $%d OR name ILIKE $%d OR address ILIKE $%d)", n, n, n)
	}

	return where, args
}

func (r *locationRepo) List(ctx context.Context, filter models.LocationFilter) ([]*models.Location, int, error) {
	where, args := buildPredicate(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM locations" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	dataArgs := append(args, filter.Limit, offset)
	dataQuery := "SELECT " + locationColumns + " FROM locations" + where + sortClause(filter.SortBy, filter.Order) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(dataArgs)-1, len(dataArgs))

	rows, err := r.db.Query(ctx, dataQuery, dataArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		location := &models.Location{}
		if err := scanLocation(rows, location); err != nil {
			return nil, 0, err
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

func (r *locationRepo) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	location := &models.Location{}
	query := "SELECT " + locationColumns + " FROM locations WHERE id = $1"
	err := scanLocation(r.db.QueryRow(ctx, query, id), location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) (*models.Location, error) {
	query := "INSERT INTO locations (code, name, type, address, capacity, used_capacity, status, temperature_controlled, min_temperature, max_temperature, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()) RETURNING " + locationColumns

	created := &models.Location{}
	row := r.db.QueryRow(ctx, query,
		location.Code, location.Name, location.Type, location.Address,
		location.Capacity, location.UsedCapacity, location.Status,
		location.TemperatureControlled, location.MinTemperature, location.MaxTemperature)
	if err := scanLocation(row, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (r *locationRepo) Update(ctx context.Context, id int64, fields *models.LocationUpdate) (*models.Location, error) {
	query := "UPDATE locations SET " +
		"name = COALESCE($1, name), " +
		"type = COALESCE($2, type), " +
		"address = COALESCE($3, address), " +
		"capacity = COALESCE($4, capacity), " +
		"used_capacity = COALESCE($5, used_capacity), " +
		"status = COALESCE($6, status), " +
		"temperature_controlled = COALESCE($7, temperature_controlled), " +
		"min_temperature = COALESCE($8, min_temperature), " +
		"max_temperature = COALESCE($9, max_temperature), " +
		"updated_at = NOW() " +
		"WHERE id = $10 RETURNING " + locationColumns

	updated := &models.Location{}
	row := r.db.QueryRow(ctx, query,
		fields.Name, fields.Type, fields.Address, fields.Capacity,
		fields.UsedCapacity, fields.Status, fields.TemperatureControlled,
		fields.MinTemperature, fields.MaxTemperature, id)
	if err := scanLocation(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *locationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM locations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanLocation(row pgx.Row, location *models.Location) error {
	return row.Scan(
		&location.ID, &location.Code, &location.Name, &location.Type,
		&location.Address, &location.Capacity, &location.UsedCapacity,
		&location.Status, &location.TemperatureControlled,
		&location.MinTemperature, &location.MaxTemperature, &location.UpdatedAt)
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleet-admin/internal/data/entity"
	"fleet-admin/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BusRepository interface {
	Create(ctx context.Context, bus *entity.Bus) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error)
	FindByPlateNumber(ctx context.Context, plate string) (*entity.Bus, error)
	FindAll(ctx context.Context, filter entity.BusFilter, limit, offset int) ([]*entity.Bus, error)
	CountAll(ctx context.Context, filter entity.BusFilter) (int64, error)
	CountByConfiguration(ctx context.Context, configurationID uuid.UUID) (int64, error)
	Update(ctx context.Context, bus *entity.Bus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type busRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusRepository(db database.PgxIface, log *zap.Logger) BusRepository {
	return &busRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus")),
	}
}

const busColumns = `id, plate_number, fleet_number, configuration_id, status, created_at, updated_at, deleted_at`

func scanBus(row pgx.Row) (*entity.Bus, error) {
	var bus entity.Bus
	err := row.Scan(
		&bus.ID,
		&bus.PlateNumber,
		&bus.FleetNumber,
		&bus.ConfigurationID,
		&bus.Status,
		&bus.CreatedAt,
		&bus.UpdatedAt,
		&bus.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func (r *busRepository) Create(ctx context.Context, bus *entity.Bus) error {
	query := `
		INSERT INTO buses (id, plate_number, fleet_number, configuration_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.PlateNumber,
		bus.FleetNumber,
		bus.ConfigurationID,
		bus.Status,
		bus.CreatedAt,
		bus.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create bus",
			zap.Error(err),
			zap.String("plate_number", bus.PlateNumber),
		)
		return fmt.Errorf("create bus %s: %w", bus.PlateNumber, err)
	}

	return nil
}

func (r *busRepository) findOne(ctx context.Context, where string, arg any) (*entity.Bus, error) {
	query := `SELECT ` + busColumns + ` FROM buses WHERE ` + where + ` AND deleted_at IS NULL`

	bus, err := scanBus(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus", zap.Error(err), zap.Any("key", arg))
		return nil, fmt.Errorf("find bus %v: %w", arg, err)
	}
	return bus, nil
}

func (r *busRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *busRepository) FindByPlateNumber(ctx context.Context, plate string) (*entity.Bus, error) {
	return r.findOne(ctx, "plate_number = $1", plate)
}

func (r *busRepository) filterClause(filter entity.BusFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE deleted_at IS NULL")
	var args []any

	if filter.ConfigurationID != nil {
		args = append(args, *filter.ConfigurationID)
		sb.WriteString(fmt.Sprintf(" AND configuration_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", len(args)))
	}

	return sb.String(), args
}

func (r *busRepository) FindAll(ctx context.Context, filter entity.BusFilter, limit, offset int) ([]*entity.Bus, error) {
	where, args := r.filterClause(filter)
	args = append(args, limit, offset)
	query := `SELECT ` + busColumns + ` FROM buses` + where +
		fmt.Sprintf(" ORDER BY fleet_number, plate_number LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find buses", zap.Error(err))
		return nil, fmt.Errorf("find buses: %w", err)
	}
	defer rows.Close()

	buses := []*entity.Bus{}
	for rows.Next() {
		bus, err := scanBus(rows)
		if err != nil {
			r.log.Error("Failed to scan bus row", zap.Error(err))
			return nil, fmt.Errorf("scan bus: %w", err)
		}
		buses = append(buses, bus)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate buses: %w", err)
	}

	return buses, nil
}

func (r *busRepository) CountAll(ctx context.Context, filter entity.BusFilter) (int64, error) {
	where, args := r.filterClause(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM buses`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count buses", zap.Error(err))
		return 0, fmt.Errorf("count buses: %w", err)
	}
	return total, nil
}

func (r *busRepository) CountByConfiguration(ctx context.Context, configurationID uuid.UUID) (int64, error) {
	id := configurationID
	return r.CountAll(ctx, entity.BusFilter{ConfigurationID: &id})
}

func (r *busRepository) Update(ctx context.Context, bus *entity.Bus) error {
	query := `
		UPDATE buses
		SET plate_number = $2, fleet_number = $3, configuration_id = $4, status = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		bus.ID,
		bus.PlateNumber,
		bus.FleetNumber,
		bus.ConfigurationID,
		bus.Status,
		bus.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update bus",
			zap.Error(err),
			zap.String("bus_id", bus.ID.String()),
		)
		return fmt.Errorf("update bus %s: %w", bus.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", bus.ID)
	}
	return nil
}

func (r *busRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `UPDATE buses SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.log.Error("Failed to delete bus", zap.Error(err), zap.String("bus_id", id.String()))
		return fmt.Errorf("delete bus %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus %s not found", id)
	}

	r.log.Info("Bus deleted", zap.String("bus_id", id.String()))
	return nil
}

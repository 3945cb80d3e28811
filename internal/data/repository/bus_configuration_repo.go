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

type BusConfigurationRepository interface {
	Create(ctx context.Context, cfg *entity.BusConfiguration) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BusConfiguration, error)
	FindAll(ctx context.Context, filter entity.ConfigurationFilter, limit, offset int) ([]*entity.BusConfiguration, error)
	CountAll(ctx context.Context, filter entity.ConfigurationFilter) (int64, error)
	Update(ctx context.Context, cfg *entity.BusConfiguration) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type busConfigurationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusConfigurationRepository(db database.PgxIface, log *zap.Logger) BusConfigurationRepository {
	return &busConfigurationRepository{
		db:  db,
		log: log.With(zap.String("repository", "bus_configuration")),
	}
}

const busConfigurationColumns = `id, name, description, bus_type, total_seats, seat_layout,
	amenities, created_by, created_at, updated_at, deleted_at`

func scanBusConfiguration(row pgx.Row) (*entity.BusConfiguration, error) {
	var cfg entity.BusConfiguration
	err := row.Scan(
		&cfg.ID,
		&cfg.Name,
		&cfg.Description,
		&cfg.BusType,
		&cfg.TotalSeats,
		&cfg.SeatLayout,
		&cfg.Amenities,
		&cfg.CreatedBy,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
		&cfg.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	if cfg.Amenities == nil {
		cfg.Amenities = []string{}
	}
	return &cfg, nil
}

func (r *busConfigurationRepository) Create(ctx context.Context, cfg *entity.BusConfiguration) error {
	query := `
		INSERT INTO bus_configurations (id, name, description, bus_type, total_seats,
		                               seat_layout, amenities, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		cfg.ID,
		cfg.Name,
		cfg.Description,
		cfg.BusType,
		cfg.TotalSeats,
		cfg.SeatLayout,
		cfg.Amenities,
		cfg.CreatedBy,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create bus configuration",
			zap.Error(err),
			zap.String("name", cfg.Name),
		)
		return fmt.Errorf("create bus configuration %s: %w", cfg.Name, err)
	}

	return nil
}

func (r *busConfigurationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BusConfiguration, error) {
	query := `SELECT ` + busConfigurationColumns + `
		FROM bus_configurations
		WHERE id = $1 AND deleted_at IS NULL
	`

	cfg, err := scanBusConfiguration(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bus configuration by ID",
			zap.Error(err),
			zap.String("configuration_id", id.String()),
		)
		return nil, fmt.Errorf("find bus configuration %s: %w", id, err)
	}

	return cfg, nil
}

// filterClause builds the WHERE conditions shared by FindAll and CountAll.
func (r *busConfigurationRepository) filterClause(filter entity.ConfigurationFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE deleted_at IS NULL")
	var args []any

	if filter.BusType != "" {
		args = append(args, filter.BusType)
		sb.WriteString(fmt.Sprintf(" AND bus_type = $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		sb.WriteString(fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	return sb.String(), args
}

func (r *busConfigurationRepository) FindAll(ctx context.Context, filter entity.ConfigurationFilter, limit, offset int) ([]*entity.BusConfiguration, error) {
	where, args := r.filterClause(filter)
	args = append(args, limit, offset)
	query := `SELECT ` + busConfigurationColumns + ` FROM bus_configurations` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find bus configurations",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bus configurations: %w", err)
	}
	defer rows.Close()

	configs := []*entity.BusConfiguration{}
	for rows.Next() {
		cfg, err := scanBusConfiguration(rows)
		if err != nil {
			r.log.Error("Failed to scan bus configuration row", zap.Error(err))
			return nil, fmt.Errorf("scan bus configuration: %w", err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate bus configurations: %w", err)
	}

	return configs, nil
}

func (r *busConfigurationRepository) CountAll(ctx context.Context, filter entity.ConfigurationFilter) (int64, error) {
	where, args := r.filterClause(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bus_configurations`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count bus configurations", zap.Error(err))
		return 0, fmt.Errorf("count bus configurations: %w", err)
	}

	return total, nil
}

func (r *busConfigurationRepository) Update(ctx context.Context, cfg *entity.BusConfiguration) error {
	query := `
		UPDATE bus_configurations
		SET name = $2, description = $3, bus_type = $4, total_seats = $5,
		    seat_layout = $6, amenities = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		cfg.ID,
		cfg.Name,
		cfg.Description,
		cfg.BusType,
		cfg.TotalSeats,
		cfg.SeatLayout,
		cfg.Amenities,
		cfg.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update bus configuration",
			zap.Error(err),
			zap.String("configuration_id", cfg.ID.String()),
		)
		return fmt.Errorf("update bus configuration %s: %w", cfg.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus configuration %s not found", cfg.ID)
	}

	return nil
}

func (r *busConfigurationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE bus_configurations SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete bus configuration",
			zap.Error(err),
			zap.String("configuration_id", id.String()),
		)
		return fmt.Errorf("delete bus configuration %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("bus configuration %s not found", id)
	}

	r.log.Info("Bus configuration deleted", zap.String("configuration_id", id.String()))
	return nil
}

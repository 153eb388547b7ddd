package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/SscSPs/travel_allowance_app/internal/models"
	"github.com/SscSPs/travel_allowance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxParametersRepository struct {
	BaseRepository
}

func newPgxParametersRepository(pool *pgxpool.Pool) portsrepo.ParametersRepositoryFacade {
	return &PgxParametersRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ParametersRepositoryFacade = (*PgxParametersRepository)(nil)

func (r *PgxParametersRepository) FindCurrentParameters(ctx context.Context) (*domain.SystemParameters, error) {
	query := `
		SELECT unit_value, average_fuel_price, last_updated_at, last_updated_by
		FROM system_parameters
		WHERE id = 1;
	`
	var m models.SystemParameters
	err := r.Pool.QueryRow(ctx, query).Scan(&m.UnitValue, &m.AverageFuelPrice, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read system parameters: %w", err)
	}
	d := mapping.ToDomainParameters(m)
	return &d, nil
}

func (r *PgxParametersRepository) SaveParameters(ctx context.Context, params domain.SystemParameters) error {
	m := mapping.ToModelParameters(params)
	query := `
		INSERT INTO system_parameters (id, unit_value, average_fuel_price, last_updated_at, last_updated_by)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			unit_value = EXCLUDED.unit_value,
			average_fuel_price = EXCLUDED.average_fuel_price,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := r.Pool.Exec(ctx, query, m.UnitValue, m.AverageFuelPrice, m.LastUpdatedAt, m.LastUpdatedBy); err != nil {
		return fmt.Errorf("failed to save system parameters: %w", err)
	}
	return nil
}

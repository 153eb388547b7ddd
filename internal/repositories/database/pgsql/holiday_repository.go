package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/SscSPs/travel_allowance_app/internal/models"
	"github.com/SscSPs/travel_allowance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxHolidayRepository struct {
	BaseRepository
}

func newPgxHolidayRepository(pool *pgxpool.Pool) portsrepo.HolidayRepositoryFacade {
	return &PgxHolidayRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HolidayRepositoryFacade = (*PgxHolidayRepository)(nil)

func (r *PgxHolidayRepository) ListHolidays(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	query := `
		SELECT holiday_date, description
		FROM holidays
		WHERE holiday_date BETWEEN $1::date AND $2::date
		ORDER BY holiday_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from.Format(time.DateOnly), to.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]domain.Holiday, 0)
	for rows.Next() {
		var m models.Holiday
		if err := rows.Scan(&m.HolidayDate, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan holiday row: %w", err)
		}
		holidays = append(holidays, mapping.ToDomainHoliday(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holiday rows: %w", err)
	}
	return holidays, nil
}

func (r *PgxHolidayRepository) SaveHoliday(ctx context.Context, holiday domain.Holiday) error {
	query := `
		INSERT INTO holidays (holiday_date, description)
		VALUES ($1::date, $2)
		ON CONFLICT (holiday_date) DO UPDATE SET description = EXCLUDED.description;
	`
	if _, err := r.Pool.Exec(ctx, query, holiday.Date.Format(time.DateOnly), holiday.Description); err != nil {
		return fmt.Errorf("failed to save holiday %s: %w", holiday.Date.Format(time.DateOnly), err)
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/SscSPs/travel_allowance_app/internal/models"
	"github.com/SscSPs/travel_allowance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// userSelect aggregates the roles of each user into one array column.
const userSelect = `
	SELECT u.user_id, u.name, u.email, u.is_staff, u.created_at, u.created_by, u.last_updated_at, u.last_updated_by,
	       COALESCE(ARRAY_AGG(ur.role ORDER BY ur.role) FILTER (WHERE ur.role IS NOT NULL), '{}') AS roles
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.user_id
`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (domain.User, error) {
	var m models.User
	var roles []string
	err := row.Scan(&m.UserID, &m.Name, &m.Email, &m.IsStaff, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &roles)
	if err != nil {
		return domain.User{}, err
	}
	return mapping.ToDomainUser(m, roles), nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, name, email, is_staff, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, query, m.UserID, m.Name, m.Email, m.IsStaff, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: user %s or e-mail %s already exists", apperrors.ErrDuplicate, m.UserID, m.Email)
		}
		return fmt.Errorf("failed to save user %s: %w", m.UserID, err)
	}

	if err := insertRoles(ctx, tx, user.UserID, user.Roles); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := userSelect + ` WHERE u.user_id = $1 GROUP BY u.user_id;`
	user, err := scanUser(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	query := userSelect + ` GROUP BY u.user_id ORDER BY u.name ASC LIMIT $1 OFFSET $2;`
	return r.queryUsers(ctx, query, limit, offset)
}

func (r *PgxUserRepository) FindUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := userSelect + `
		WHERE u.user_id IN (SELECT user_id FROM user_roles WHERE role = $1)
		GROUP BY u.user_id ORDER BY u.name ASC;`
	return r.queryUsers(ctx, query, string(role))
}

func (r *PgxUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]domain.User, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// SetUserRoles replaces every role of the user.
func (r *PgxUserRepository) SetUserRoles(ctx context.Context, userID string, roles []domain.Role, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `UPDATE users SET last_updated_at = $1, last_updated_by = $2 WHERE user_id = $3;`, time.Now(), updatedBy, userID)
	if err != nil {
		return fmt.Errorf("failed to touch user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1;`, userID); err != nil {
		return fmt.Errorf("failed to clear roles of user %s: %w", userID, err)
	}
	if err := insertRoles(ctx, tx, userID, roles); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertRoles(ctx context.Context, tx pgx.Tx, userID string, roles []domain.Role) error {
	if len(roles) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, role := range roles {
		batch.Queue(`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING;`, userID, string(role))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert roles for user %s: %w", userID, err)
	}
	return nil
}

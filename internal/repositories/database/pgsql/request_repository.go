package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/SscSPs/travel_allowance_app/internal/models"
	"github.com/SscSPs/travel_allowance_app/internal/utils/mapping"
	"github.com/SscSPs/travel_allowance_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// caseNumberLockClass namespaces the advisory locks taken per case year.
const caseNumberLockClass = 7301

const defaultRequestPageSize = 20

const requestColumns = `request_id, sequence_number, case_year, requester_id, purpose, destination,
	departure_at, return_at, transport_mode, vehicle_plate, involves_air_tickets, requests_registration_fee,
	count_with_overnight, count_without_overnight, count_half_day, explicit_region,
	total_distance_km, allowance_total, displacement_total, registration_fee, grand_total, displacement_missing,
	unit_value, fuel_price, status, document_folder_id, document_id, created_at, created_by, last_updated_at, last_updated_by`

// PgxRequestRepository stores requests and their process history.
type PgxRequestRepository struct {
	BaseRepository
}

func newPgxRequestRepository(pool *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

func scanRequest(row pgx.Row) (models.Request, error) {
	var m models.Request
	err := row.Scan(
		&m.RequestID,
		&m.SequenceNumber,
		&m.CaseYear,
		&m.RequesterID,
		&m.Purpose,
		&m.Destination,
		&m.DepartureAt,
		&m.ReturnAt,
		&m.TransportMode,
		&m.VehiclePlate,
		&m.InvolvesAirTickets,
		&m.RequestsRegistrationFee,
		&m.CountWithOvernight,
		&m.CountWithoutOvernight,
		&m.CountHalfDay,
		&m.ExplicitRegion,
		&m.TotalDistanceKm,
		&m.AllowanceTotal,
		&m.DisplacementTotal,
		&m.RegistrationFee,
		&m.GrandTotal,
		&m.DisplacementMissing,
		&m.UnitValue,
		&m.FuelPrice,
		&m.Status,
		&m.DocumentFolderID,
		&m.DocumentID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// CreateRequest inserts the request and its first history record in one transaction.
func (r *PgxRequestRepository) CreateRequest(ctx context.Context, req domain.Request, initial domain.ProcessHistory) (*domain.Request, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // ignored once committed

	m := mapping.ToModelRequest(req)
	insertQuery := `
		INSERT INTO requests (requester_id, purpose, destination, departure_at, return_at, transport_mode, vehicle_plate,
			involves_air_tickets, requests_registration_fee, count_with_overnight, count_without_overnight, count_half_day,
			explicit_region, total_distance_km, allowance_total, displacement_total, registration_fee, grand_total,
			displacement_missing, status, created_at, created_by, last_updated_at, last_updated_by, unit_value, fuel_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
		RETURNING request_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.RequesterID,
		m.Purpose,
		m.Destination,
		m.DepartureAt,
		m.ReturnAt,
		m.TransportMode,
		m.VehiclePlate,
		m.InvolvesAirTickets,
		m.RequestsRegistrationFee,
		m.CountWithOvernight,
		m.CountWithoutOvernight,
		m.CountHalfDay,
		m.ExplicitRegion,
		m.TotalDistanceKm,
		m.AllowanceTotal,
		m.DisplacementTotal,
		m.RegistrationFee,
		m.GrandTotal,
		m.DisplacementMissing,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.UnitValue,
		m.FuelPrice,
	).Scan(&m.RequestID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, apperrors.NewNotFoundError("requester " + m.RequesterID)
		}
		return nil, apperrors.NewStorageError("failed to insert request", err)
	}

	initial.RequestID = m.RequestID
	if _, err := insertHistory(ctx, tx, initial); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	created := mapping.ToDomainRequest(m)
	return &created, nil
}

// FindRequestByID retrieves a request by its id.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID int64) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE request_id = $1;`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request %d: %w", requestID, err)
	}
	d := mapping.ToDomainRequest(m)
	return &d, nil
}

// ListRequests pages through requests newest first using a (created_at, request_id) cursor.
func (r *PgxRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestFilter) ([]domain.Request, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultRequestPageSize
	}

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)
	if filter.RequesterID != "" {
		args = append(args, filter.RequesterID)
		conditions = append(conditions, "requester_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewValidationFailedError("invalid nextToken")
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(created_at, request_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	query := `SELECT ` + requestColumns + ` FROM requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit+1)
	query += " ORDER BY created_at DESC, request_id DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	results := make([]domain.Request, 0, limit+1)
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		results = append(results, mapping.ToDomainRequest(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating request rows: %w", err)
	}

	var nextToken *string
	if len(results) > limit {
		last := results[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.RequestID)
		nextToken = &token
		results = results[:limit]
	}
	return results, nextToken, nil
}

// FindHistoryByRequestID retrieves the audit trail oldest first.
func (r *PgxRequestRepository) FindHistoryByRequestID(ctx context.Context, requestID int64) ([]domain.ProcessHistory, error) {
	query := `
		SELECT history_id, request_id, previous_status, new_status, actor_id, note, created_at
		FROM process_history
		WHERE request_id = $1
		ORDER BY created_at ASC, history_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for request %d: %w", requestID, err)
	}
	defer rows.Close()

	history := make([]domain.ProcessHistory, 0)
	for rows.Next() {
		var m models.ProcessHistory
		if err := rows.Scan(&m.HistoryID, &m.RequestID, &m.PreviousStatus, &m.NewStatus, &m.ActorID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, mapping.ToDomainHistory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return history, nil
}

// UpdateDraft rewrites trip details and totals while the request is still a draft.
func (r *PgxRequestRepository) UpdateDraft(ctx context.Context, req domain.Request) error {
	m := mapping.ToModelRequest(req)
	query := `
		UPDATE requests SET
			purpose = $1, destination = $2, departure_at = $3, return_at = $4, transport_mode = $5, vehicle_plate = $6,
			involves_air_tickets = $7, requests_registration_fee = $8,
			count_with_overnight = $9, count_without_overnight = $10, count_half_day = $11, explicit_region = $12,
			total_distance_km = $13, allowance_total = $14, displacement_total = $15, registration_fee = $16,
			grand_total = $17, displacement_missing = $18, last_updated_at = $19, last_updated_by = $20,
			unit_value = $23, fuel_price = $24
		WHERE request_id = $21 AND status = $22;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Purpose,
		m.Destination,
		m.DepartureAt,
		m.ReturnAt,
		m.TransportMode,
		m.VehiclePlate,
		m.InvolvesAirTickets,
		m.RequestsRegistrationFee,
		m.CountWithOvernight,
		m.CountWithoutOvernight,
		m.CountHalfDay,
		m.ExplicitRegion,
		m.TotalDistanceKm,
		m.AllowanceTotal,
		m.DisplacementTotal,
		m.RegistrationFee,
		m.GrandTotal,
		m.DisplacementMissing,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.RequestID,
		string(domain.StatusDraft),
		m.UnitValue,
		m.FuelPrice,
	)
	if err != nil {
		return apperrors.NewStorageError(fmt.Sprintf("failed to update request %d", m.RequestID), err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, r.Pool, m.RequestID, "request is no longer a draft")
	}
	return nil
}

// ApplyTransition moves the request to the new status and appends history in one transaction.
// A submission additionally takes a per-year advisory lock and assigns the next case number.
func (r *PgxRequestRepository) ApplyTransition(ctx context.Context, rec portsrepo.TransitionRecord) (*domain.TransitionResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // ignored once committed

	var caseNumber *domain.CaseNumber
	var tagRows int64
	if rec.Submission != nil {
		year := rec.Submission.Year
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1, $2);`, caseNumberLockClass, year); err != nil {
			return nil, apperrors.NewStorageError("failed to lock case numbers", err)
		}

		var next int
		err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(sequence_number), 0) + 1 FROM requests WHERE case_year = $1;`, year).Scan(&next)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to compute next case number", err)
		}

		totals := rec.Submission.Totals
		query := `
			UPDATE requests SET
				status = $1, sequence_number = $2, case_year = $3,
				total_distance_km = $4, allowance_total = $5, displacement_total = $6, registration_fee = $7,
				grand_total = $8, displacement_missing = $9, last_updated_at = $10, last_updated_by = $11,
				unit_value = $14, fuel_price = $15
			WHERE request_id = $12 AND status = $13 AND sequence_number IS NULL AND last_updated_at = $16;
		`
		tag, err := tx.Exec(ctx, query,
			string(rec.History.NewStatus),
			next,
			year,
			totals.TotalDistanceKm,
			totals.AllowanceTotal,
			totals.DisplacementTotal,
			totals.RegistrationFee,
			totals.GrandTotal,
			totals.DisplacementMissing,
			rec.History.Timestamp,
			rec.History.ActorID,
			rec.RequestID,
			string(rec.ExpectedStatus),
			totals.UnitValue,
			totals.FuelPrice,
			rec.Submission.DraftUpdatedAt,
		)
		if err != nil {
			if pgErrorCode(err) == pgUniqueViolation {
				return nil, apperrors.NewConflictError(fmt.Sprintf("case number %d-%d already taken", next, year))
			}
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to submit request %d", rec.RequestID), err)
		}
		tagRows = tag.RowsAffected()
		caseNumber = &domain.CaseNumber{SequenceNumber: next, Year: year}
	} else {
		query := `
			UPDATE requests SET status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE request_id = $4 AND status = $5;
		`
		tag, err := tx.Exec(ctx, query,
			string(rec.History.NewStatus),
			rec.History.Timestamp,
			rec.History.ActorID,
			rec.RequestID,
			string(rec.ExpectedStatus),
		)
		if err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to update status of request %d", rec.RequestID), err)
		}
		tagRows = tag.RowsAffected()
	}

	if tagRows == 0 {
		return nil, r.missingOrConflict(ctx, tx, rec.RequestID, "request changed concurrently")
	}

	rec.History.RequestID = rec.RequestID
	history, err := insertHistory(ctx, tx, rec.History)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &domain.TransitionResult{History: *history, CaseNumber: caseNumber}, nil
}

// UpdateDocumentRefs records where the generated documents live.
func (r *PgxRequestRepository) UpdateDocumentRefs(ctx context.Context, requestID int64, folderID, documentID string) error {
	query := `UPDATE requests SET document_folder_id = $1, document_id = $2 WHERE request_id = $3;`
	tag, err := r.Pool.Exec(ctx, query, folderID, documentID, requestID)
	if err != nil {
		return fmt.Errorf("failed to update document references of request %d: %w", requestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// missingOrConflict tells a vanished request apart from one whose status moved on.
func (r *PgxRequestRepository) missingOrConflict(ctx context.Context, q queryRower, requestID int64, message string) error {
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM requests WHERE request_id = $1);`, requestID).Scan(&exists); err != nil {
		return apperrors.NewStorageError("failed to check request existence", err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.NewConflictError(message)
}

func insertHistory(ctx context.Context, tx pgx.Tx, h domain.ProcessHistory) (*domain.ProcessHistory, error) {
	m := mapping.ToModelHistory(h)
	query := `
		INSERT INTO process_history (request_id, previous_status, new_status, actor_id, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING history_id;
	`
	err := tx.QueryRow(ctx, query, m.RequestID, m.PreviousStatus, m.NewStatus, m.ActorID, m.Note, m.CreatedAt).Scan(&m.HistoryID)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to append history for request %d", m.RequestID), err)
	}
	d := mapping.ToDomainHistory(m)
	return &d, nil
}

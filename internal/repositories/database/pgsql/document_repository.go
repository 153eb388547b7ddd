package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/travel_allowance_app/internal/apperrors"
	"github.com/SscSPs/travel_allowance_app/internal/core/domain"
	portsrepo "github.com/SscSPs/travel_allowance_app/internal/core/ports/repositories"
	"github.com/SscSPs/travel_allowance_app/internal/models"
	"github.com/SscSPs/travel_allowance_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) (*domain.Document, error) {
	query := `
		INSERT INTO documents (request_id, file_name, external_file_id, kind, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING document_id;
	`
	err := r.Pool.QueryRow(ctx, query, doc.RequestID, doc.FileName, doc.ExternalFileID, string(doc.Kind), doc.UploadedBy, doc.UploadedAt).
		Scan(&doc.DocumentID)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("request %d", doc.RequestID))
		}
		return nil, fmt.Errorf("failed to save document for request %d: %w", doc.RequestID, err)
	}
	return &doc, nil
}

func (r *PgxDocumentRepository) ListDocumentsByRequestID(ctx context.Context, requestID int64) ([]domain.Document, error) {
	query := `
		SELECT document_id, request_id, file_name, external_file_id, kind, uploaded_by, uploaded_at
		FROM documents
		WHERE request_id = $1
		ORDER BY uploaded_at ASC, document_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents for request %d: %w", requestID, err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var m models.Document
		if err := rows.Scan(&m.DocumentID, &m.RequestID, &m.FileName, &m.ExternalFileID, &m.Kind, &m.UploadedBy, &m.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, mapping.ToDomainDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

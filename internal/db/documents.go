package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-generator/internal/types"
)

// -----------------------------------------------------------------------------
// Generated Document Methods
// -----------------------------------------------------------------------------

const documentColumns = `id, user_id, job_id, document_type, status, stage, progress,
		        content_text, content_structured, ats_score, error_message,
		        created_at, started_at, completed_at`

// CreateDocument inserts a new generation record
func (db *DB) CreateDocument(ctx context.Context, doc *types.GeneratedDocument) error {
	structuredJSON, atsJSON, err := marshalDocumentFields(doc)
	if err != nil {
		return err
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO generated_documents (id, user_id, job_id, document_type, status,
		     stage, progress, content_text, content_structured, ats_score,
		     error_message, created_at, started_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		doc.ID, doc.UserID, doc.JobID, doc.DocumentType, doc.Status,
		nullIfEmpty(doc.Stage), doc.Progress, nullIfEmpty(doc.ContentText),
		structuredJSON, atsJSON, nullIfEmpty(doc.ErrorMessage),
		doc.CreatedAt, doc.StartedAt, doc.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// UpdateDocument persists the current state of a generation record
func (db *DB) UpdateDocument(ctx context.Context, doc *types.GeneratedDocument) error {
	structuredJSON, atsJSON, err := marshalDocumentFields(doc)
	if err != nil {
		return err
	}

	result, err := db.pool.Exec(ctx,
		`UPDATE generated_documents SET
		     status = $2, stage = $3, progress = $4, content_text = $5,
		     content_structured = $6, ats_score = $7, error_message = $8,
		     started_at = $9, completed_at = $10, updated_at = NOW()
		 WHERE id = $1`,
		doc.ID, doc.Status, nullIfEmpty(doc.Stage), doc.Progress,
		nullIfEmpty(doc.ContentText), structuredJSON, atsJSON,
		nullIfEmpty(doc.ErrorMessage), doc.StartedAt, doc.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", doc.ID)
	}
	return nil
}

// GetDocument retrieves a generation record by id. Returns nil when no row
// exists.
func (db *DB) GetDocument(ctx context.Context, id string) (*types.GeneratedDocument, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM generated_documents WHERE id = $1`, id)
	doc, err := scanDocument(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

// DocumentFilters holds optional filters for listing documents
type DocumentFilters struct {
	UserID string
	JobID  string
	Status types.DocumentStatus
	Limit  int
}

// ListDocuments retrieves generation records with optional filters, most
// recent first.
func (db *DB) ListDocuments(ctx context.Context, filters DocumentFilters) ([]types.GeneratedDocument, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT ` + documentColumns + ` FROM generated_documents WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filters.UserID)
		argNum++
	}
	if filters.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []types.GeneratedDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	return docs, nil
}

// DeleteDocument deletes a generation record
func (db *DB) DeleteDocument(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM generated_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

func marshalDocumentFields(doc *types.GeneratedDocument) (structured, ats []byte, err error) {
	if doc.Structured != nil {
		if structured, err = json.Marshal(doc.Structured); err != nil {
			return nil, nil, fmt.Errorf("failed to marshal structured content: %w", err)
		}
	}
	if doc.ATSScore != nil {
		if ats, err = json.Marshal(doc.ATSScore); err != nil {
			return nil, nil, fmt.Errorf("failed to marshal ats score: %w", err)
		}
	}
	return structured, ats, nil
}

func scanDocument(row pgx.Row) (*types.GeneratedDocument, error) {
	var doc types.GeneratedDocument
	var stage, contentText, errorMessage *string
	var structuredJSON, atsJSON []byte

	err := row.Scan(&doc.ID, &doc.UserID, &doc.JobID, &doc.DocumentType, &doc.Status,
		&stage, &doc.Progress, &contentText, &structuredJSON, &atsJSON,
		&errorMessage, &doc.CreatedAt, &doc.StartedAt, &doc.CompletedAt)
	if err != nil {
		return nil, err
	}
	doc.Stage = orEmpty(stage)
	doc.ContentText = orEmpty(contentText)
	doc.ErrorMessage = orEmpty(errorMessage)
	if structuredJSON != nil {
		_ = json.Unmarshal(structuredJSON, &doc.Structured)
	}
	if atsJSON != nil {
		_ = json.Unmarshal(atsJSON, &doc.ATSScore)
	}
	return &doc, nil
}

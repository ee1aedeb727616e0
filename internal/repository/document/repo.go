// Package document persists ingested documents in Postgres and searches them
// by blended full-text relevance.
package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kailas-cloud/shopdex/internal/db"
	"github.com/kailas-cloud/shopdex/internal/domain"
)

// Repo is the Postgres document repository.
type Repo struct {
	pool db.Querier
}

// New creates a document repository.
func New(pool db.Querier) *Repo {
	return &Repo{pool: pool}
}

// searchSQL blends three relevance signals per row: the plain token rank, the
// contiguous phrase rank, and a fixed 0.5 substring fallback over the content.
// Title and filename substring hits qualify a row as a candidate but score
// through the fallback only when the content itself matches.
const searchSQL = `
	SELECT
		id,
		filename,
		title,
		content,
		file_path,
		uploaded_by,
		created_at,
		GREATEST(
			ts_rank(content_tsvector, plainto_tsquery('english', $1)),
			ts_rank(content_tsvector, phraseto_tsquery('english', $1)),
			CASE
				WHEN LOWER(content) LIKE '%' || LOWER($1) || '%' THEN 0.5
				ELSE 0
			END
		)::float8 AS rank
	FROM documents
	WHERE
		content_tsvector @@ plainto_tsquery('english', $1)
		OR content_tsvector @@ phraseto_tsquery('english', $1)
		OR LOWER(content) LIKE '%' || LOWER($1) || '%'
		OR LOWER(title) LIKE '%' || LOWER($1) || '%'
		OR LOWER(filename) LIKE '%' || LOWER($1) || '%'
	ORDER BY rank DESC
	LIMIT $2
`

// SearchByRelevance returns the top document candidates for the query,
// ordered by descending blended rank, at most limit rows.
func (r *Repo) SearchByRelevance(ctx context.Context, query string, limit int) ([]domain.Result, error) {
	rows, err := r.pool.Query(ctx, searchSQL, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var d domain.Document
		var score float64
		if err := rows.Scan(
			&d.ID, &d.Filename, &d.Title, &d.Content,
			&d.FilePath, &d.UploadedBy, &d.CreatedAt, &score,
		); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		results = append(results, domain.DocumentResult(d, score))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return results, nil
}

// Insert stores a new document. The content_tsvector column is generated by
// the database from the content.
func (r *Repo) Insert(ctx context.Context, d domain.Document) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO documents (id, filename, title, content, file_path, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Filename, d.Title, d.Content, d.FilePath, d.UploadedBy, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// List returns document metadata (no content), newest first.
func (r *Repo) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, filename, title, file_path, uploaded_by, created_at
		FROM documents
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.Title, &d.FilePath, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document rows: %w", err)
	}
	return docs, nil
}

// Delete removes a document and returns its filename for the caller's
// response. Returns domain.ErrDocumentNotFound for an unknown id.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (domain.Document, error) {
	var d domain.Document
	err := r.pool.QueryRow(ctx, `
		DELETE FROM documents
		WHERE id = $1
		RETURNING id, filename`,
		id,
	).Scan(&d.ID, &d.Filename)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Document{}, domain.ErrDocumentNotFound
		}
		return domain.Document{}, fmt.Errorf("delete document: %w", err)
	}
	return d, nil
}

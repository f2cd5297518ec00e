package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"okrhub/internal/database"
	"okrhub/internal/model"
	"okrhub/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, priority, status, owner, link, is_file_uploaded, file_name, created_at, modified_at, is_active`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Priority,
		&d.Status,
		&d.Owner,
		&d.Link,
		&d.IsFileUploaded,
		&d.FileName,
		&d.CreatedAt,
		&d.ModifiedAt,
		&d.IsActive,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	q := `
		INSERT INTO documents (id, title, priority, status, owner, link, is_file_uploaded, file_name, created_at, modified_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Priority,
		doc.Status,
		doc.Owner,
		doc.Link,
		doc.IsFileUploaded,
		doc.FileName,
		doc.CreatedAt,
		doc.ModifiedAt,
		doc.IsActive,
	)
	return scanDocument(row)
}

// FindByIDForOwners fetches a single document by ID, restricted to the given owner set.
func (r *DocumentPostgres) FindByIDForOwners(ctx context.Context, id string, ownerIDs []string) (*model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND owner = ANY($2)
	`
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q, id, ownerIDs)
	return scanDocument(row)
}

// ListByOwners returns documents owned by any of ownerIDs using the filter
// and LIMIT/OFFSET pagination, plus the total count for the same filter.
func (r *DocumentPostgres) ListByOwners(ctx context.Context, ownerIDs []string, f repository.DocumentFilter, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	where, args := buildDocumentFilter(ownerIDs, f)

	qCount := `SELECT COUNT(*) FROM documents ` + where
	var total int
	if err := database.Conn(ctx, r.db).QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(
		`SELECT %s FROM documents %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		documentColumns, where, sortClause(f.SortBy), len(args)+1, len(args)+2,
	)
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, qList, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{
		Items: items,
		Total: total,
	}, nil
}

// ListActiveByIDs returns active documents matching the given IDs, newest first.
func (r *DocumentPostgres) ListActiveByIDs(ctx context.Context, ids []string) ([]model.Document, error) {
	q := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE is_active = true AND id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return items, rows.Err()
}

// ListIDsByOwnerAndStatus returns document IDs for one owner and status.
func (r *DocumentPostgres) ListIDsByOwnerAndStatus(ctx context.Context, ownerID, status string) ([]string, error) {
	const q = `SELECT id FROM documents WHERE owner = $1 AND status = $2`
	rows, err := database.Conn(ctx, r.db).QueryContext(ctx, q, ownerID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update persists the mutable fields of a document and returns the stored row.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	q := `
		UPDATE documents
		SET title = $2, priority = $3, status = $4, owner = $5, link = $6,
		    is_file_uploaded = $7, file_name = $8, modified_at = now()
		WHERE id = $1
		RETURNING ` + documentColumns
	row := database.Conn(ctx, r.db).QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Priority,
		doc.Status,
		doc.Owner,
		doc.Link,
		doc.IsFileUploaded,
		doc.FileName,
	)
	return scanDocument(row)
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := database.Conn(ctx, r.db).ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// buildDocumentFilter assembles the WHERE clause for owner-scoped listings.
func buildDocumentFilter(ownerIDs []string, f repository.DocumentFilter) (string, []any) {
	conds := []string{"owner = ANY($1)"}
	args := []any{ownerIDs}

	if len(f.Priorities) > 0 {
		args = append(args, f.Priorities)
		conds = append(conds, fmt.Sprintf("priority = ANY($%d)", len(args)))
	}
	if len(f.Statuses) > 0 {
		args = append(args, f.Statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if len(f.Owners) > 0 {
		args = append(args, f.Owners)
		conds = append(conds, fmt.Sprintf("owner = ANY($%d)", len(args)))
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// priorityRank orders Low < Medium < High instead of alphabetically.
const priorityRank = `CASE priority WHEN 'Low' THEN 0 WHEN 'Medium' THEN 1 WHEN 'High' THEN 2 ELSE 3 END`

func sortClause(sortBy string) string {
	switch sortBy {
	case "priority":
		return priorityRank + " ASC, created_at DESC"
	case "-priority":
		return priorityRank + " DESC, created_at DESC"
	case "title":
		return "title ASC"
	case "-title":
		return "title DESC"
	case "created_at":
		return "created_at ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}

package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"notebook/internal/domain"
	models "notebook/internal/domain/models/docsystem"
	docsysRepo "notebook/internal/domain/repositories/docsystem"
	"notebook/internal/repository/postgres"
)

const documentColumns = "id, user_id, title, folder_id, created_at, updated_at"

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, title, folder_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, doc.OwnerID, doc.Title, doc.FolderID).
		Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return postgres.ConstraintErr("create document", err, map[string]*int64{
			"user_id":   &doc.OwnerID,
			"folder_id": doc.FolderID,
		})
	}

	return nil
}

// GetByID retrieves a document by ID
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, documentColumns, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.NotFoundOr("get document", "document", id, err)
	}

	return doc, nil
}

// GetByIDForUpdate retrieves a document with SELECT ... FOR UPDATE.
// Concurrent block inserts into the same document serialize on this lock.
func (r *PostgresDocumentRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1 FOR UPDATE`, documentColumns, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	doc, err := scanDocument(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.NotFoundOr("lock document", "document", id, err)
	}

	return doc, nil
}

// ListByOwner retrieves all documents of a user
func (r *PostgresDocumentRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY title ASC, id ASC
	`, documentColumns, r.tables.Documents)

	return r.queryDocuments(ctx, "list documents", query, ownerID)
}

// ListByFolder lists documents in a folder (nil = root level)
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, ownerID int64, folderID *int64) ([]models.Document, error) {
	if folderID == nil {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE user_id = $1 AND folder_id IS NULL
			ORDER BY title ASC, id ASC
		`, documentColumns, r.tables.Documents)
		return r.queryDocuments(ctx, "list root documents", query, ownerID)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY title ASC, id ASC
	`, documentColumns, r.tables.Documents)
	return r.queryDocuments(ctx, "list folder documents", query, ownerID, *folderID)
}

// Update persists title and folder_id
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, folder_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, doc.Title, doc.FolderID, doc.ID).Scan(&doc.UpdatedAt)
	if postgres.IsPgForeignKeyError(err) {
		return postgres.ConstraintErr("update document", err, map[string]*int64{"folder_id": doc.FolderID})
	}
	if err != nil {
		return postgres.NotFoundOr("update document", "document", doc.ID, err)
	}

	return nil
}

// Delete deletes a document; its blocks go via ON DELETE CASCADE
func (r *PostgresDocumentRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StorageErr("delete document", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("document", id)
	}

	return nil
}

func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, op, query string, args ...interface{}) ([]models.Document, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.StorageErr(op, err)
	}
	defer rows.Close()

	docs := []models.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, postgres.StorageErr("scan document", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StorageErr("iterate documents", err)
	}

	return docs, nil
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Title,
		&doc.FolderID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

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

const folderColumns = "id, user_id, name, parent_folder_id, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) docsysRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, parent_folder_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, folder.OwnerID, folder.Name, folder.ParentFolderID).
		Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		return postgres.ConstraintErr("create folder", err, map[string]*int64{
			"user_id":          &folder.OwnerID,
			"parent_folder_id": folder.ParentFolderID,
		})
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, folderColumns, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	folder, err := scanFolder(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.NotFoundOr("get folder", "folder", id, err)
	}

	return folder, nil
}

// ListByOwner retrieves all folders of a user
func (r *PostgresFolderRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1
		ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, "list folders", query, ownerID)
}

// ListChildren lists immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, ownerID int64, parentID *int64) ([]models.Folder, error) {
	if parentID == nil {
		query := fmt.Sprintf(`
			SELECT %s FROM %s
			WHERE user_id = $1 AND parent_folder_id IS NULL
			ORDER BY name ASC, id ASC
		`, folderColumns, r.tables.Folders)
		return r.queryFolders(ctx, "list root folders", query, ownerID)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE user_id = $1 AND parent_folder_id = $2
		ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders)
	return r.queryFolders(ctx, "list folder children", query, ownerID, *parentID)
}

// GetAncestorIDs walks parent links upward with a depth-bounded recursive CTE
func (r *PostgresFolderRepository) GetAncestorIDs(ctx context.Context, id int64, maxDepth int) ([]int64, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE ancestors AS (
			SELECT parent_folder_id AS id, 1 AS depth
			FROM %[1]s
			WHERE id = $1
			UNION ALL
			SELECT f.parent_folder_id, a.depth + 1
			FROM %[1]s f
			JOIN ancestors a ON f.id = a.id
			WHERE a.depth < $2
		)
		SELECT id FROM ancestors
		WHERE id IS NOT NULL
		ORDER BY depth ASC
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, id, maxDepth)
	if err != nil {
		return nil, postgres.StorageErr("get folder ancestors", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, postgres.StorageErr("scan folder ancestors", err)
	}

	return ids, nil
}

// Update persists name and parent_folder_id
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, parent_folder_id = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, folder.Name, folder.ParentFolderID, folder.ID).Scan(&folder.UpdatedAt)
	if postgres.IsPgForeignKeyError(err) {
		return postgres.ConstraintErr("update folder", err, map[string]*int64{"parent_folder_id": folder.ParentFolderID})
	}
	if err != nil {
		return postgres.NotFoundOr("update folder", "folder", folder.ID, err)
	}

	return nil
}

// Delete deletes a folder. Child folders go via ON DELETE CASCADE and the
// documents of every removed folder are detached via ON DELETE SET NULL.
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Folders)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StorageErr("delete folder", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("folder", id)
	}

	return nil
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, op, query string, args ...interface{}) ([]models.Folder, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.StorageErr(op, err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, postgres.StorageErr("scan folder", err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StorageErr("iterate folders", err)
	}

	return folders, nil
}

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.OwnerID,
		&folder.Name,
		&folder.ParentFolderID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

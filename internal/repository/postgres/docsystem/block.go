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

const blockColumns = "id, document_id, content, block_type, order_index, created_at, updated_at"

// PostgresBlockRepository implements the BlockRepository interface
type PostgresBlockRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(config *postgres.RepositoryConfig) docsysRepo.BlockRepository {
	return &PostgresBlockRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new block
func (r *PostgresBlockRepository) Create(ctx context.Context, block *models.Block) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, content, block_type, order_index)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, r.tables.Blocks)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		block.DocumentID,
		block.Content,
		string(block.BlockType),
		block.OrderIndex,
	).Scan(&block.ID, &block.CreatedAt, &block.UpdatedAt)
	if err != nil {
		return postgres.ConstraintErr("create block", err, map[string]*int64{"document_id": &block.DocumentID})
	}

	return nil
}

// GetByID retrieves a block by ID
func (r *PostgresBlockRepository) GetByID(ctx context.Context, id int64) (*models.Block, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, blockColumns, r.tables.Blocks)

	executor := postgres.GetExecutor(ctx, r.pool)
	block, err := scanBlock(executor.QueryRow(ctx, query, id))
	if err != nil {
		return nil, postgres.NotFoundOr("get block", "block", id, err)
	}

	return block, nil
}

// GetByIDs loads every existing block among ids in one round trip
func (r *PostgresBlockRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.Block, error) {
	result := make(map[int64]*models.Block, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1)`, blockColumns, r.tables.Blocks)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ids)
	if err != nil {
		return nil, postgres.StorageErr("get blocks", err)
	}
	defer rows.Close()

	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, postgres.StorageErr("scan block", err)
		}
		result[block.ID] = block
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StorageErr("iterate blocks", err)
	}

	return result, nil
}

// ListByDocument lists blocks in display order
func (r *PostgresBlockRepository) ListByDocument(ctx context.Context, documentID int64) ([]models.Block, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE document_id = $1
		ORDER BY order_index ASC, id ASC
	`, blockColumns, r.tables.Blocks)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, documentID)
	if err != nil {
		return nil, postgres.StorageErr("list blocks", err)
	}
	defer rows.Close()

	blocks := []models.Block{}
	for rows.Next() {
		block, err := scanBlock(rows)
		if err != nil {
			return nil, postgres.StorageErr("scan block", err)
		}
		blocks = append(blocks, *block)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.StorageErr("iterate blocks", err)
	}

	return blocks, nil
}

// MaxOrderIndex returns the highest order_index in a document
func (r *PostgresBlockRepository) MaxOrderIndex(ctx context.Context, documentID int64) (int, bool, error) {
	query := fmt.Sprintf(`SELECT MAX(order_index) FROM %s WHERE document_id = $1`, r.tables.Blocks)

	var maxIndex *int
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, documentID).Scan(&maxIndex); err != nil {
		return 0, false, postgres.StorageErr("max order index", err)
	}

	if maxIndex == nil {
		return 0, false, nil
	}
	return *maxIndex, true, nil
}

// Update persists content and block_type
func (r *PostgresBlockRepository) Update(ctx context.Context, block *models.Block) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET content = $1, block_type = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`, r.tables.Blocks)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, block.Content, string(block.BlockType), block.ID).Scan(&block.UpdatedAt)
	if err != nil {
		return postgres.NotFoundOr("update block", "block", block.ID, err)
	}

	return nil
}

// UpdateOrderIndexes sends every placement in a single pgx.Batch
func (r *PostgresBlockRepository) UpdateOrderIndexes(ctx context.Context, placements []models.Placement) error {
	if len(placements) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET order_index = $1, updated_at = NOW()
		WHERE id = $2
	`, r.tables.Blocks)

	batch := &pgx.Batch{}
	for _, p := range placements {
		batch.Queue(query, p.OrderIndex, p.BlockID)
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	results := executor.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			r.logger.Warn("close reorder batch", "error", err)
		}
	}()

	for _, p := range placements {
		tag, err := results.Exec()
		if err != nil {
			return postgres.ConstraintErr("reorder blocks", err, nil)
		}
		if tag.RowsAffected() == 0 {
			return domain.NewNotFound("block", p.BlockID)
		}
	}

	return nil
}

// Delete deletes a single block
func (r *PostgresBlockRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Blocks)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return postgres.StorageErr("delete block", err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("block", id)
	}

	return nil
}

func scanBlock(row pgx.Row) (*models.Block, error) {
	var block models.Block
	var blockType string
	err := row.Scan(
		&block.ID,
		&block.DocumentID,
		&block.Content,
		&blockType,
		&block.OrderIndex,
		&block.CreatedAt,
		&block.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	block.BlockType = models.BlockType(blockType)
	return &block, nil
}

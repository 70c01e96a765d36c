package config

import "math"

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	// Same as folder names for consistency.
	MaxDocumentTitleLength = 255

	// MaxBlockContentLength caps a single block's content (1 MiB).
	// Tables and images store JSON or URLs in content, so the cap is generous.
	MaxBlockContentLength = 1 << 20

	// MaxReorderBatchSize is the largest number of placements accepted
	// by a single reorder call.
	MaxReorderBatchSize = 10000

	// MaxOrderIndex is the largest order_index a block may hold.
	// The blocks.order_index column is a PostgreSQL INTEGER.
	MaxOrderIndex = math.MaxInt32

	// MaxFolderDepth is the deepest a folder may sit (a root folder is at
	// level 1). It also bounds ancestor walks when checking for cycles.
	MaxFolderDepth = 256
)

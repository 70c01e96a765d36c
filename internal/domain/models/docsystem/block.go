package docsystem

import (
	"time"
)

// BlockType names how a block's content is interpreted.
// The accepted set is defined by the blocktypes registry.
type BlockType string

const (
	BlockTypeParagraph    BlockType = "paragraph"
	BlockTypeHeading1     BlockType = "heading1"
	BlockTypeHeading2     BlockType = "heading2"
	BlockTypeHeading3     BlockType = "heading3"
	BlockTypeBulletList   BlockType = "bullet_list"
	BlockTypeNumberedList BlockType = "numbered_list"
	BlockTypeCode         BlockType = "code"
	BlockTypeQuote        BlockType = "quote"
	BlockTypeCallout      BlockType = "callout"
	BlockTypeToggle       BlockType = "toggle"
	BlockTypeDivider      BlockType = "divider"
	BlockTypeImage        BlockType = "image"
	BlockTypeTable        BlockType = "table"
)

type Block struct {
	ID         int64     `json:"id" db:"id" cbor:"1,keyasint"`
	DocumentID int64     `json:"document_id" db:"document_id" cbor:"2,keyasint"`
	Content    string    `json:"content" db:"content" cbor:"3,keyasint"`
	BlockType  BlockType `json:"block_type" db:"block_type" cbor:"4,keyasint"`
	OrderIndex int       `json:"order_index" db:"order_index" cbor:"5,keyasint"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" cbor:"6,keyasint"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" cbor:"7,keyasint"`
}

// Placement assigns a new order_index to one block in a reorder batch
type Placement struct {
	BlockID    int64 `json:"id"`
	OrderIndex int   `json:"order_index"`
}

package docsystem

// Owned is anything the ownership guard can decide on.
type Owned interface {
	Owner() int64
}

// BlockRef pairs a block with its parent document; blocks have no owner
// column and inherit ownership from the document.
type BlockRef struct {
	Block    *Block
	Document *Document
}

// Owner implements Owned. A ref whose document does not match the block
// reports no owner, which never equals a real user id.
func (r BlockRef) Owner() int64 {
	if r.Block == nil || r.Document == nil || r.Block.DocumentID != r.Document.ID {
		return 0
	}
	return r.Document.OwnerID
}

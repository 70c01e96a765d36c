package embedded

import "encoding/binary"

// Key layout. Ids are big-endian so prefix scans come back in id order.
//
//	u/<user>                     user record
//	f/<folder>                   folder record
//	d/<document>                 document record
//	b/<block>                    block record
//	x:uf/<user>/<folder>         folders by owner
//	x:fp/<user>/<parent>/<folder> folders by parent (0 = root)
//	x:ud/<user>/<document>       documents by owner
//	x:df/<user>/<folder>/<document> documents by folder (0 = root)
//	x:bd/<document>/<block>      blocks by document
//	x:un/<username>              user id by username
//	x:ue/<email>                 user id by email
//	g:<record key>               reference guard of a user, folder or document
const (
	prefixUser     = "u/"
	prefixFolder   = "f/"
	prefixDocument = "d/"
	prefixBlock    = "b/"

	indexFoldersByOwner  = "x:uf/"
	indexFoldersByParent = "x:fp/"
	indexDocsByOwner     = "x:ud/"
	indexDocsByFolder    = "x:df/"
	indexBlocksByDoc     = "x:bd/"
	uniqueUsername       = "x:un/"
	uniqueEmail          = "x:ue/"

	prefixGuard = "g:"

	seqUsers     = "seq:users"
	seqFolders   = "seq:folders"
	seqDocuments = "seq:documents"
	seqBlocks    = "seq:blocks"
)

// key builds prefix followed by each id as 8 big-endian bytes
func key(prefix string, ids ...int64) []byte {
	k := make([]byte, len(prefix), len(prefix)+8*len(ids))
	copy(k, prefix)
	for _, id := range ids {
		k = binary.BigEndian.AppendUint64(k, uint64(id))
	}
	return k
}

// uniqueKey builds the key that claims value within a unique index
func uniqueKey(prefix, value string) []byte {
	return append([]byte(prefix), value...)
}

// guardKey is written by every record that references recordKey and read
// by the transaction that deletes it
func guardKey(recordKey []byte) []byte {
	return append([]byte(prefixGuard), recordKey...)
}

// trailingID decodes the id stored in the last 8 bytes of an index key
func trailingID(k []byte) int64 {
	return int64(binary.BigEndian.Uint64(k[len(k)-8:]))
}

// parentOrRoot maps a nullable folder reference to its index slot
func parentOrRoot(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

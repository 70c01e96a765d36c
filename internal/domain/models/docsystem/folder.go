package docsystem

import (
	"time"
)

type Folder struct {
	ID             int64     `json:"id" db:"id" cbor:"1,keyasint"`
	OwnerID        int64     `json:"user_id" db:"user_id" cbor:"2,keyasint"`
	Name           string    `json:"name" db:"name" cbor:"3,keyasint"`
	ParentFolderID *int64    `json:"parent_folder_id" db:"parent_folder_id" cbor:"4,keyasint"` // NULL = root level
	CreatedAt      time.Time `json:"created_at" db:"created_at" cbor:"5,keyasint"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at" cbor:"6,keyasint"`
}

// Owner implements Owned
func (f *Folder) Owner() int64 { return f.OwnerID }

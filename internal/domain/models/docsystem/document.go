package docsystem

import (
	"time"
)

type Document struct {
	ID        int64     `json:"id" db:"id" cbor:"1,keyasint"`
	OwnerID   int64     `json:"user_id" db:"user_id" cbor:"2,keyasint"`
	Title     string    `json:"title" db:"title" cbor:"3,keyasint"`
	FolderID  *int64    `json:"folder_id" db:"folder_id" cbor:"4,keyasint"` // NULL = root level
	CreatedAt time.Time `json:"created_at" db:"created_at" cbor:"5,keyasint"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" cbor:"6,keyasint"`
}

// Owner implements Owned
func (d *Document) Owner() int64 { return d.OwnerID }

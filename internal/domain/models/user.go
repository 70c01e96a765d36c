package models

import "time"

// User is the owner anchor for folders and documents. Credentials live with
// the authentication provider; only identity fields are stored here.
type User struct {
	ID        int64     `json:"id" db:"id" cbor:"1,keyasint"`
	Username  string    `json:"username" db:"username" cbor:"2,keyasint"`
	Email     string    `json:"email" db:"email" cbor:"3,keyasint"`
	CreatedAt time.Time `json:"created_at" db:"created_at" cbor:"4,keyasint"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" cbor:"5,keyasint"`
}

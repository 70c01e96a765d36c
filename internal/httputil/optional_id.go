package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalID tracks presence and value of a nullable id for JSON PATCH
// semantics (RFC 7396), which *int64 alone cannot express:
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (move to root)
//   - Present=true, Value=&7: field references id 7
type OptionalID struct {
	Present bool
	Value   *int64
}

// Set returns a present OptionalID pointing at id
func Set(id int64) OptionalID {
	return OptionalID{Present: true, Value: &id}
}

// Null returns a present OptionalID holding JSON null
func Null() OptionalID {
	return OptionalID{Present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// MarshalJSON writes the value or null
func (o OptionalID) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

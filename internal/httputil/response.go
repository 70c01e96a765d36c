package httputil

import (
	"encoding/json"
	"net/http"
)

// ErrorKind is the machine-readable failure class sent in the "error" member
// of every problem response, so clients never parse the detail text
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindForbidden        ErrorKind = "forbidden"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindReferenceInvalid ErrorKind = "reference_invalid"
	KindConflict         ErrorKind = "conflict"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindStorage          ErrorKind = "storage"
	KindInternal         ErrorKind = "internal"
)

// problemTypePrefix namespaces the RFC 7807 "type" of each kind
const problemTypePrefix = "urn:notebook:problem:"

var kindStatus = map[ErrorKind]int{
	KindNotFound:         http.StatusNotFound,
	KindForbidden:        http.StatusForbidden,
	KindInvalidInput:     http.StatusBadRequest,
	KindReferenceInvalid: http.StatusUnprocessableEntity,
	KindConflict:         http.StatusConflict,
	KindUnauthorized:     http.StatusUnauthorized,
	KindStorage:          http.StatusInternalServerError,
	KindInternal:         http.StatusInternalServerError,
}

// Problem is an RFC 7807 problem document. Kind decides the type, title and
// status; Fields adds members such as the offending resource and id.
type Problem struct {
	Kind   ErrorKind
	Detail string
	Fields map[string]interface{}
}

// Status returns the HTTP status of the problem's kind
func (p Problem) Status() int {
	if status, ok := kindStatus[p.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MarshalJSON flattens Fields next to the standard members. Fields cannot
// override the standard members.
func (p Problem) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(p.Fields)+5)
	for k, v := range p.Fields {
		m[k] = v
	}

	status := p.Status()
	m["type"] = problemTypePrefix + string(p.Kind)
	m["title"] = http.StatusText(status)
	m["status"] = status
	m["error"] = p.Kind
	if p.Detail != "" {
		m["detail"] = p.Detail
	}

	return json.Marshal(m)
}

// WriteProblem writes p as application/problem+json
func WriteProblem(w http.ResponseWriter, p Problem) {
	payload, err := json.Marshal(p)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status())
	w.Write(payload)
}

// RespondError writes a problem with no extra fields
func RespondError(w http.ResponseWriter, kind ErrorKind, detail string) {
	WriteProblem(w, Problem{Kind: kind, Detail: detail})
}

// RespondJSON writes a JSON response with the given status code.
// The payload is marshaled before any header is written, so an encoding
// failure still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, KindInternal, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

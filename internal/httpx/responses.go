package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

const contentTypeJSON = "application/json; charset=utf-8"

// timestampLayout is RFC-3339 with millisecond precision; on UTC instants it
// renders the trailing Z the envelope promises.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrorEnvelope is the body of every non-2xx response.
type ErrorEnvelope struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Value     string            `json:"value,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	Detail    string            `json:"detail,omitempty"`
}

// Extra carries the optional envelope fields. Callers pass Extra{} when none
// apply.
type Extra struct {
	Value  string
	Fields map[string]string
	Detail string
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func JSONNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func JSONError(w http.ResponseWriter, status int, message string, extra Extra) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorEnvelope{
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Value:     extra.Value,
		Fields:    extra.Fields,
		Detail:    extra.Detail,
	})
}

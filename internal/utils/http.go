package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data and writes it as the response body with the given
// status code. Every sync endpoint responds through it: deltas, merge
// reports, watermarks, session and certificate payloads all share the JSON
// wire encoding.
//
// The body is marshaled before any header is written, so a value that cannot
// encode (a malformed record payload, for instance) turns into a clean
// 500 instead of a truncated 200. Returns the number of body bytes written
// and the marshaling error, if any.
//
//	WriteJSON(w, report, http.StatusOK)
//	WriteJSON(w, delta, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

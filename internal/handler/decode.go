package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// decodeJSON decodes the request body into dst, normalizing the failure
// modes (empty body, malformed JSON, oversized body) into caller-facing
// messages suitable for a 400 response.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errors.New("request body is required")
	default:
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return errors.New("request body too large")
		}
		return errors.New("invalid request body")
	}
}

package utilities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodyBytes bounds JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// MessageResponse is the body of plain status and error responses.
type MessageResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteMessage writes {"message": msg} with the given status code.
func WriteMessage(w http.ResponseWriter, status int, msg string) error {
	return WriteJSON(w, status, MessageResponse{Message: msg})
}

// DecodeJSON decodes a single JSON object from the request body into v.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body must not be empty")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}

	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}

	return nil
}

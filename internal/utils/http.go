package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrEmptyBody is returned by DecodeJSON when the request body is empty.
	ErrEmptyBody = errors.New("empty request body")

	// ErrBodyTooLarge is returned by DecodeJSON when the body exceeds the cap.
	ErrBodyTooLarge = errors.New("request body too large")
)

// maxBodyBytes caps request bodies decoded by DecodeJSON.
const maxBodyBytes = 1 << 20

// WriteJSON serializes data to JSON and writes it with the given status code
// and "Content-Type: application/json".
//
// If marshaling fails, it responds with 500 Internal Server Error and returns
// a wrapped error.
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

// DecodeJSON decodes a single JSON value from body into v. Bodies over 1 MiB
// fail with ErrBodyTooLarge; trailing data is rejected.
func DecodeJSON(body io.Reader, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, io.NopCloser(body), maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		}
		return fmt.Errorf("error decoding JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("error decoding JSON body: unexpected trailing data")
	}
	return nil
}

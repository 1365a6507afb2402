package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// serverErrorBody is written when a response value cannot be encoded.
const serverErrorBody = `{"detail":"A server error occurred."}`

// WriteJSON encodes data and writes it with statusCode and an
// application/json content type. It returns the number of body bytes
// written.
//
// A 204 No Content status is written without a body. When data cannot be
// encoded the client gets a 500 with the generic server error body and the
// encoding error is returned for logging.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "application/json")

	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return 0, nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(serverErrorBody))
		return 0, fmt.Errorf("error encoding response body: %w", err)
	}

	w.WriteHeader(statusCode)
	return w.Write(body)
}

package handlers

import (
	"encoding/json"
	"net/http"
)

// HTTPErrorResponder writes an error response for a handler failure.
type HTTPErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

var httpErrorResponder HTTPErrorResponder

// SetHTTPErrorResponder installs the centralized error responder.
func SetHTTPErrorResponder(responder HTTPErrorResponder) {
	httpErrorResponder = responder
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	if httpErrorResponder != nil {
		httpErrorResponder(w, r, err)
		return
	}

	// Minimal fallback used before the server wires the responder.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

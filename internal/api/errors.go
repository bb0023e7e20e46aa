package api

import (
	"errors"
	"log"
	"net/http"

	"turismocombita/internal/httpx"
)

const (
	msgReadFailed  = "Error leyendo datos"
	msgWriteFailed = "Error guardando datos"
)

// apiError is a request failure with a message meant for the client.
// Returning one from a store update aborts the write.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string { return e.message }

func badRequest(msg string) error { return &apiError{status: http.StatusBadRequest, message: msg} }
func notFound(msg string) error   { return &apiError{status: http.StatusNotFound, message: msg} }

// writeFailure answers with the apiError's status, or logs err and sends
// a generic 500 with fallback.
func writeFailure(w http.ResponseWriter, err error, fallback string) {
	var ae *apiError
	if errors.As(err, &ae) {
		httpx.WriteError(w, ae.status, ae.message)
		return
	}
	log.Printf("[api] %s: %v", fallback, err)
	httpx.WriteError(w, http.StatusInternalServerError, fallback)
}

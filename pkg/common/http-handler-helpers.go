package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-wardrobe/pkg/session"
)

// StatusError carries the http status a handler error should be reported with.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &StatusError{Status: http.StatusBadRequest, Err: err}
}

func NotFound(err error) error {
	return &StatusError{Status: http.StatusNotFound, Err: err}
}

func BadGateway(err error) error {
	return &StatusError{Status: http.StatusBadGateway, Err: err}
}

func Unprocessable(err error) error {
	return &StatusError{Status: http.StatusUnprocessableEntity, Err: err}
}

func DefaultHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.Header().Set("Cache-Control", "private, no-cache")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

// WriteJson writes data with status 200.
func WriteJson(w http.ResponseWriter, data any) error {
	w.WriteHeader(http.StatusOK)
	return sonic.ConfigDefault.NewEncoder(w).Encode(data)
}

// DecodeJson reads the request body into v, reporting malformed bodies as bad requests.
func DecodeJson(r *http.Request, v any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(v); err != nil {
		return BadRequest(fmt.Errorf("invalid body: %w", err))
	}
	return nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var se *StatusError
	if errors.As(err, &se) {
		status = se.Status
	}
	if status >= http.StatusInternalServerError {
		log.Printf("Error handling request: %v", err)
	}
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// JsonHandler resolves the caller's session and runs fn, which returns the value to encode.
// Errors are written as {"error": "..."} with the status of a StatusError or 500.
func JsonHandler(store *session.Store, fn func(r *http.Request, s *session.Session) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		var s *session.Session
		if store != nil {
			s = HandleSessionCookie(store, w, r)
		}
		DefaultHeaders(w, r)
		data, err := fn(r, s)
		if err != nil {
			writeError(w, err)
			return
		}
		if err = WriteJson(w, data); err != nil {
			log.Printf("Failed to encode response: %v", err)
		}
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}

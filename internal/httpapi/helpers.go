package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/gorilla/schema"

	"todo-api/internal/errors"
)

const maxBodyBytes = 1 << 20 // 1 MiB

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

// errorResponse is the JSON body of every failed request
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// decodeBody fills v from a JSON or form-encoded request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		return decodeForm(r, v)
	default:
		return decodeJSON(r, v)
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	// Unknown members are ignored so clients may send whole item objects.
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return stderrors.New("invalid JSON: multiple JSON values")
	}
	return nil
}

func decodeForm(r *http.Request, v any) error {
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	if err := formDecoder.Decode(v, r.PostForm); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

// writeError answers with the status and user-facing message for err.
// Store details never leave the process; they are logged instead.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if errors.ShouldLogError(err) {
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
	}

	writeJSON(w, status, errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	})
}

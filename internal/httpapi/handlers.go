package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"todo-api/internal/errors"
)

// itemRequest is the body of POST and PUT. It mirrors the item JSON shape so
// clients may send back a whole item; id is ignored in favour of the path.
type itemRequest struct {
	ID         int64  `json:"id" schema:"id"`
	Name       string `json:"name" schema:"name"`
	IsComplete bool   `json:"isComplete" schema:"isComplete"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := s.service.Ping(ctx); err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err)
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]string{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.service.ListItems(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, errors.NewInvalidInputError("body", nil, err.Error()))
		return
	}

	item, err := s.service.CreateItem(r.Context(), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/items/"+strconv.FormatInt(item.ID, 10))
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.service.GetItem(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req itemRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, errors.NewInvalidInputError("body", nil, err.Error()))
		return
	}

	item, err := s.service.UpdateItem(r.Context(), id, req.Name, req.IsComplete)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.DeleteItem(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", raw, "must be an integer")
	}
	return id, nil
}

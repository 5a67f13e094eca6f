package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/taskdesk/internal/service"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in service.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task, err := s.tasks.Create(r.Context(), in, ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Get(r.Context(), mux.Vars(r)["id"], ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task, err := s.tasks.Update(r.Context(), mux.Vars(r)["id"], in, ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), mux.Vars(r)["id"], ownerID(r)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := s.tasks.List(r.Context(), q, ownerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// parseListQuery reads filter criteria from the URL query string.
func parseListQuery(r *http.Request) (types.ListQuery, error) {
	values := r.URL.Query()
	q := types.ListQuery{
		Title:    values.Get("title"),
		Status:   values.Get("status"),
		SortBy:   values.Get("sort_by"),
		SortDesc: values.Get("sort_desc") == "true",
	}

	if v := values.Get("due_date"); v != "" {
		due, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return q, types.NewValidationError("due_date", "must be an RFC 3339 timestamp")
		}
		q.DueDate = &due
	}
	var err error
	if q.Page, err = intParam(values.Get("page"), "page"); err != nil {
		return q, err
	}
	if q.PageSize, err = intParam(values.Get("page_size"), "page_size"); err != nil {
		return q, err
	}
	return q, nil
}

func intParam(v, field string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, types.NewValidationError(field, "must be an integer")
	}
	return n, nil
}

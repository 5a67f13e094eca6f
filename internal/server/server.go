// Package server exposes the task and auth services over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mesh-intelligence/taskdesk/internal/service"
)

// Server routes HTTP requests to the task and auth services. Ownership
// identity comes exclusively from the bearer token; handlers never accept
// an owner ID from the request body or URL.
type Server struct {
	tasks  service.TaskManager
	auth   *service.AuthService
	log    *slog.Logger
	router *mux.Router
}

// New builds a Server with its routes registered.
func New(tasks service.TaskManager, auth *service.AuthService, log *slog.Logger) *Server {
	s := &Server{
		tasks: tasks,
		auth:  auth,
		log:   log,
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	tasksRouter := r.PathPrefix("/tasks").Subrouter()
	tasksRouter.Use(s.requireAuth)
	tasksRouter.HandleFunc("", s.handleCreateTask).Methods(http.MethodPost)
	tasksRouter.HandleFunc("", s.handleListTasks).Methods(http.MethodGet)
	tasksRouter.HandleFunc("/{id}", s.handleGetTask).Methods(http.MethodGet)
	tasksRouter.HandleFunc("/{id}", s.handleUpdateTask).Methods(http.MethodPut)
	tasksRouter.HandleFunc("/{id}", s.handleDeleteTask).Methods(http.MethodDelete)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("server listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

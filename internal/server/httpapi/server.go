// Package httpapi exposes the user and entry services over a JSON REST API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"passkeeper/internal/logging"
	"passkeeper/internal/server/services"
)

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	entries *services.EntryService
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, es *services.EntryService) (*HTTPServer, error) {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		entries: es,
	}, nil
}

// Router builds the route table. Everything under /api/passwords and the
// account endpoints require a bearer token; register and login do not.
func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.accessTokenMiddleware)
	authed.HandleFunc("/passwords", s.handleList).Methods(http.MethodGet)
	authed.HandleFunc("/passwords", s.handleAdd).Methods(http.MethodPost)
	authed.HandleFunc("/passwords/search", s.handleSearch).Methods(http.MethodGet)
	authed.HandleFunc("/passwords/export", s.handleExport).Methods(http.MethodGet)
	authed.HandleFunc("/passwords/{id}", s.handleUpdate).Methods(http.MethodPut)
	authed.HandleFunc("/passwords/{id}", s.handleDelete).Methods(http.MethodDelete)
	authed.HandleFunc("/passwords/{id}/reveal", s.handleReveal).Methods(http.MethodGet)
	authed.HandleFunc("/rekey", s.handleRekey).Methods(http.MethodPost)
	authed.HandleFunc("/password", s.handleChangePassword).Methods(http.MethodPost)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

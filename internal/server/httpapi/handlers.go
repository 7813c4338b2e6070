package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"passkeeper/internal/common"
	"passkeeper/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type entryRequest struct {
	Account  string `json:"account"`
	Username string `json:"username"`
	Secret   string `json:"secret"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// entryResponse never carries the ciphertext; secrets leave the server only
// through the reveal and export endpoints.
type entryResponse struct {
	ID        string    `json:"id"`
	Account   string    `json:"account"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toEntryResponse(e *models.Entry) entryResponse {
	return entryResponse{
		ID:        e.ID,
		Account:   e.Account,
		Username:  e.Username,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toEntryResponses(entries []*models.Entry) []entryResponse {
	result := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, toEntryResponse(e))
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service sentinels to HTTP statuses. Anything
// unrecognized is a 500 with a generic message.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		writeJSONError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, common.ErrUsernameTaken):
		writeJSONError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, common.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrStorageUnavailable):
		writeJSONError(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		s.logger.Error(r.Context(), err.Error())
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeJSONError(w, http.StatusBadRequest, "username and password are required")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", user.UserName)
	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID, "username": user.UserName})
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

func (s *HTTPServer) handleChangePassword(w http.ResponseWriter, r *http.Request) {

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.users.ChangePassword(r.Context(), userIDFromContext(r.Context()), req.OldPassword, req.NewPassword)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

func (s *HTTPServer) handleAdd(w http.ResponseWriter, r *http.Request) {

	var req entryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Account == "" || req.Secret == "" {
		writeJSONError(w, http.StatusBadRequest, "account and secret are required")
		return
	}

	entry, err := s.entries.Add(r.Context(), userIDFromContext(r.Context()), req.Account, req.Username, req.Secret)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

func (s *HTTPServer) handleList(w http.ResponseWriter, r *http.Request) {

	entries, err := s.entries.List(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {

	query := r.URL.Query().Get("q")

	entries, err := s.entries.Search(r.Context(), userIDFromContext(r.Context()), query)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

func (s *HTTPServer) handleUpdate(w http.ResponseWriter, r *http.Request) {

	var req entryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	id := mux.Vars(r)["id"]
	err := s.entries.Update(r.Context(), userIDFromContext(r.Context()), id, req.Account, req.Username, req.Secret)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *HTTPServer) handleDelete(w http.ResponseWriter, r *http.Request) {

	id := mux.Vars(r)["id"]
	err := s.entries.Delete(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *HTTPServer) handleReveal(w http.ResponseWriter, r *http.Request) {

	id := mux.Vars(r)["id"]
	secret, err := s.entries.Reveal(r.Context(), userIDFromContext(r.Context()), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"secret": secret})
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {

	entries, err := s.entries.Export(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (s *HTTPServer) handleRekey(w http.ResponseWriter, r *http.Request) {

	err := s.entries.Rekey(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Rekey completed", "user_id", userIDFromContext(r.Context()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "rekeyed"})
}

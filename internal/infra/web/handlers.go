package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"telegram-chat-logger/internal/domain"
	"telegram-chat-logger/internal/domain/model"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userUC.List(r.Context())
	if err != nil {
		s.internalError(w, err, "list users")
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	telegramID, err := strconv.ParseInt(chi.URLParam(r, "telegramID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
		return
	}

	user, err := s.userUC.GetByTelegramID(r.Context(), telegramID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
			return
		}
		s.internalError(w, err, "get user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	// Invalid or missing limit falls back to the default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := s.messageUC.ListRecent(r.Context(), limit)
	if err != nil {
		s.internalError(w, err, "list messages")
		return
	}
	if messages == nil {
		messages = []*model.MessageWithUser{}
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	users, messages, err := s.statsUC.Totals(r.Context())
	if err != nil {
		s.internalError(w, err, "stats")
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Users    int `json:"users"`
		Messages int `json:"messages"`
	}{Users: users, Messages: messages})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// internalError logs the cause and answers with a generic body; storage
// details never reach the response.
func (s *Server) internalError(w http.ResponseWriter, err error, op string) {
	s.log.Error().Err(err).Str("op", op).Msg("read api failure")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

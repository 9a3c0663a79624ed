package handlers

import (
	"net/http"

	"talenthub/internal/app"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

// SessionHandler binds the unread-count poll loop to explicit session
// boundaries: start spawns the loop, end cancels it immediately.
type SessionHandler struct {
	pollers *app.PollerRegistry
}

func NewSessionHandler(pollers *app.PollerRegistry) *SessionHandler {
	return &SessionHandler{pollers: pollers}
}

func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	h.pollers.StartSession(recipientID)
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	h.pollers.EndSession(recipientID)
	response.JSON(w, http.StatusNoContent, nil)
}

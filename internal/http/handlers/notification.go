package handlers

import (
	"net/http"
	"strconv"

	"talenthub/internal/app"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

type NotificationHandler struct {
	inbox   *app.NotificationService
	pollers *app.PollerRegistry
}

func NewNotificationHandler(inbox *app.NotificationService, pollers *app.PollerRegistry) *NotificationHandler {
	return &NotificationHandler{inbox: inbox, pollers: pollers}
}

// List serves the full inbox page. Opening the inbox also wakes the
// session's poll loop for an immediate out-of-band counter fetch.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page, err := h.inbox.FetchRecent(r.Context(), recipientID, limit)
	if err != nil {
		response.Error(w, err)
		return
	}
	if h.pollers != nil {
		h.pollers.Wake(recipientID)
	}
	response.JSON(w, http.StatusOK, page)
}

type unreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	count, err := h.inbox.UnreadCount(r.Context(), recipientID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, unreadCountResponse{UnreadCount: count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.inbox.MarkRead(r.Context(), recipientID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	page, err := h.inbox.MarkAllRead(r.Context(), recipientID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.inbox.Delete(r.Context(), recipientID, id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func (h *NotificationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	page, err := h.inbox.DeleteAll(r.Context(), recipientID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, page)
}

type targetResponse struct {
	Found bool `json:"found"`
	Job   any  `json:"job,omitempty"`
}

// ResolveTarget follows the weak job reference; a deleted job answers with
// found=false rather than an error.
func (h *NotificationHandler) ResolveTarget(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	target, found, err := h.inbox.ResolveTarget(r.Context(), recipientID, id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if !found {
		response.JSON(w, http.StatusOK, targetResponse{Found: false})
		return
	}
	response.JSON(w, http.StatusOK, targetResponse{Found: true, Job: target})
}

package handlers

import (
	"net/http"
	"strings"

	"talenthub/internal/common"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
	"talenthub/internal/integration/attachments"
)

type AttachmentHandler struct {
	store attachments.Store
}

func NewAttachmentHandler(store attachments.Store) *AttachmentHandler {
	return &AttachmentHandler{store: store}
}

type uploadResponse struct {
	Ref string `json:"ref"`
}

// Upload proxies a resume blob to the attachment store and hands the opaque
// reference back for the subsequent application submission.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobIDValue := strings.TrimSpace(r.URL.Query().Get("job_id"))
	if jobIDValue == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "job_id is required"}))
		return
	}
	jobID, err := common.ParseUUID(jobIDValue)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	filename := strings.TrimSpace(r.URL.Query().Get("filename"))
	if filename == "" {
		filename = "resume"
	}
	ref, err := h.store.Store(r.Context(), candidateID, jobID, filename, r.Body)
	if err != nil {
		response.Error(w, common.NewError(common.CodeInternal, "failed to store attachment", err))
		return
	}
	response.JSON(w, http.StatusCreated, uploadResponse{Ref: ref})
}

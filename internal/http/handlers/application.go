package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/user"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
	jobs         *app.JobService
	limiter      middleware.Limiter
	applyPerMin  int
}

func NewApplicationHandler(applications *app.ApplicationService, jobs *app.JobService, limiter middleware.Limiter, applyPerMin int) *ApplicationHandler {
	if applyPerMin <= 0 {
		applyPerMin = 3
	}
	return &ApplicationHandler{applications: applications, jobs: jobs, limiter: limiter, applyPerMin: applyPerMin}
}

type submitRequest struct {
	JobID       string `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeRef   string `json:"resume_ref"`
}

func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	applicantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if strings.TrimSpace(req.JobID) == "" {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "job_id is required"}))
		return
	}
	jobID, err := common.ParseUUID(req.JobID)
	if err != nil {
		response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "invalid uuid"}))
		return
	}
	if h.limiter != nil {
		key := "apply:" + jobID.String() + ":" + applicantID.String()
		if !h.limiter.Allow(key, h.applyPerMin, time.Minute) {
			response.Error(w, common.NewError(common.CodeRateLimited, "apply rate limit exceeded", nil))
			return
		}
	}
	created, err := h.applications.Submit(r.Context(), jobID, applicantID, req.CoverLetter, req.ResumeRef)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	activeRole, _ := middleware.ActiveRoleFromContext(r.Context())
	filter, err := listFilterFromQuery(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	switch activeRole {
	case user.RoleCandidate:
		filter.ApplicantID = &actorID
	case user.RoleRecruiter:
		if filter.JobID == nil {
			response.Error(w, common.NewValidationError("invalid request", map[string]string{"job_id": "job_id is required"}))
			return
		}
		owned, err := h.jobs.Get(r.Context(), *filter.JobID)
		if err != nil {
			response.Error(w, err)
			return
		}
		if owned.OwnerID != actorID {
			response.Error(w, common.NewError(common.CodeForbidden, "job belongs to another actor", nil))
			return
		}
	case user.RoleAdmin:
		// admins may list across all jobs
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		return
	}
	items, err := h.applications.List(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []application.Application{}
	}
	response.JSON(w, http.StatusOK, items)
}

type transitionRequest struct {
	Status string `json:"status"`
}

func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 4)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req transitionRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	if req.Status == "" {
		response.Error(w, common.NewError(common.CodeValidation, "status is required", nil))
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), actorID, jobID, applicationID, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	applicationID, err := idFromPath(r, 4)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.applications.Delete(r.Context(), actorID, jobID, applicationID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

func listFilterFromQuery(r *http.Request) (application.Filter, error) {
	var filter application.Filter
	if value := strings.TrimSpace(r.URL.Query().Get("job_id")); value != "" {
		jobID, err := common.ParseUUID(value)
		if err != nil {
			return filter, common.NewValidationError("invalid request", map[string]string{"job_id": "invalid uuid"})
		}
		filter.JobID = &jobID
	}
	if value := strings.TrimSpace(r.URL.Query().Get("status")); value != "" {
		status := application.Status(strings.ToLower(value))
		filter.Status = &status
	}
	filter.Descending = r.URL.Query().Get("order") == "desc"
	filter.Limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	filter.Offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return filter, nil
}

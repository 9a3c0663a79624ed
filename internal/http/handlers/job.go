package handlers

import (
	"net/http"
	"strconv"

	"talenthub/internal/app"
	"talenthub/internal/domain/job"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

type JobHandler struct {
	jobs *app.JobService
}

func NewJobHandler(jobs *app.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

type jobRequest struct {
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
}

func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	role, _ := middleware.ActiveRoleFromContext(r.Context())
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.jobs.Create(r.Context(), job.Job{
		OwnerID:     ownerID,
		OwnerRole:   role,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      job.Status(req.Status),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.Update(r.Context(), job.Job{
		ID:          jobID,
		OwnerID:     ownerID,
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      job.Status(req.Status),
	})
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

type jobStatusRequest struct {
	Status string `json:"status"`
}

func (h *JobHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req jobStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.jobs.UpdateStatus(r.Context(), ownerID, jobID, job.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.jobs.Get(r.Context(), jobID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *JobHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	items, err := h.jobs.ListActive(r.Context(), limit, offset)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []job.Job{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) ListOwned(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.jobs.ListByOwner(r.Context(), ownerID)
	if err != nil {
		response.Error(w, err)
		return
	}
	if items == nil {
		items = []job.Job{}
	}
	response.JSON(w, http.StatusOK, items)
}

func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	jobID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.jobs.Delete(r.Context(), ownerID, jobID); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusNoContent, nil)
}

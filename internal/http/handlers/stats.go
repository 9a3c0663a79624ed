package handlers

import (
	"net/http"

	"talenthub/internal/app"
	"talenthub/internal/common"
	"talenthub/internal/domain/stats"
	"talenthub/internal/domain/user"
	"talenthub/internal/http/middleware"
	"talenthub/internal/http/response"
)

type StatsHandler struct {
	stats *app.StatsService
}

func NewStatsHandler(statsService *app.StatsService) *StatsHandler {
	return &StatsHandler{stats: statsService}
}

// Get recomputes the dashboard snapshot on load: all jobs for admins,
// owned jobs for recruiters.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	activeRole, _ := middleware.ActiveRoleFromContext(r.Context())
	var scope stats.Scope
	switch activeRole {
	case user.RoleAdmin:
	case user.RoleRecruiter:
		scope.OwnerID = &actorID
	default:
		response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
		return
	}
	snapshot, err := h.stats.Recompute(r.Context(), scope)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, snapshot)
}

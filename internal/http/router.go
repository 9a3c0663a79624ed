package http

import (
	"net/http"
	"strings"
	"time"

	"talenthub/internal/domain/user"
	"talenthub/internal/http/handlers"
	"talenthub/internal/http/metrics"
	httpmw "talenthub/internal/http/middleware"
)

type RouterDependencies struct {
	JobHandler          *handlers.JobHandler
	ApplicationHandler  *handlers.ApplicationHandler
	NotificationHandler *handlers.NotificationHandler
	StatsHandler        *handlers.StatsHandler
	SessionHandler      *handlers.SessionHandler
	AttachmentHandler   *handlers.AttachmentHandler
	MetricsHandler      *handlers.MetricsHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Metrics             *metrics.Collector
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 8 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.BodyLimit(maxBodyBytes), httpmw.Recover, httpmw.Metrics(r.deps.Metrics), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.ListActive(w, req)
			return
		case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && path != "/jobs/owned":
			r.deps.JobHandler.Get(w, req)
			return
		}

		protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			r.handleProtected(w, req)
		}))
		protected.ServeHTTP(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	ownerRoles := []user.Role{user.RoleAdmin, user.RoleRecruiter}

	switch {
	case req.Method == http.MethodGet && path == "/jobs/owned":
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.JobHandler.ListOwned)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.JobHandler.Create)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status") && !strings.Contains(path, "/applications/"):
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.JobHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/status") && strings.Contains(path, "/applications/"):
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.ApplicationHandler.UpdateStatus)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/") && strings.Contains(path, "/applications/"):
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.ApplicationHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/jobs/"):
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.JobHandler.Update)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/jobs/"):
		httpmw.RequireRole(ownerRoles...)(http.HandlerFunc(r.deps.JobHandler.Delete)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.Submit)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/attachments":
		httpmw.RequireRole(user.RoleCandidate)(http.HandlerFunc(r.deps.AttachmentHandler.Upload)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications/unread-count":
		r.deps.NotificationHandler.UnreadCount(w, req)
		return
	case req.Method == http.MethodPost && path == "/notifications/read-all":
		r.deps.NotificationHandler.MarkAllRead(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/read"):
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/notifications/") && strings.HasSuffix(path, "/target"):
		r.deps.NotificationHandler.ResolveTarget(w, req)
		return
	case req.Method == http.MethodDelete && path == "/notifications":
		r.deps.NotificationHandler.DeleteAll(w, req)
		return
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/notifications/"):
		r.deps.NotificationHandler.Delete(w, req)
		return
	case req.Method == http.MethodGet && path == "/stats":
		r.deps.StatsHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && path == "/session/start":
		r.deps.SessionHandler.Start(w, req)
		return
	case req.Method == http.MethodPost && path == "/session/end":
		r.deps.SessionHandler.End(w, req)
		return
	}

	http.NotFound(w, req)
}

package handlers

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Nkwochamaureen/Skillhub-connect-backend/app"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/middleware"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/models"
	"github.com/Nkwochamaureen/Skillhub-connect-backend/utils"
)

// GetCurrentUserHandler returns the account attached to the session.
func GetCurrentUserHandler(deps *app.Dependencies) http.HandlerFunc {
	return deps.AuthMiddleware.WithPrincipal(CurrentUser(deps.Logger))
}

// CurrentUser writes the caller's account, 401 when there is none, or 500
// when the store could not be consulted.
func CurrentUser(logger *zap.Logger) middleware.PrincipalHandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, rc *middleware.RequestContext) {
		if rc.Err != nil {
			HandleServiceError(w, rc.Err, logger.With(zap.String("request_id", rc.RequestID)))
			return
		}
		if !rc.Authenticated() {
			_ = utils.WriteUnauthorized(w, "")
			return
		}
		if err := utils.WriteOK(w, rc.Account); err != nil {
			logger.Error("failed to write user response", zap.Error(err))
		}
	}
}

// ListTasksHandler returns every task.
func ListTasksHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), deps.Config.Store.Timeout)
		defer cancel()

		tasks, err := deps.Tasks.List(ctx)
		if err != nil {
			deps.Logger.Error("failed to list tasks",
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, "Failed to load tasks")
			return
		}
		if tasks == nil {
			tasks = []*models.Task{}
		}
		_ = utils.WriteOK(w, tasks)
	}
}

var (
	forums = []models.Forum{
		{ID: 1, Topic: "Construction Trends"},
		{ID: 2, Topic: "Tech Tools"},
	}
	resources = []models.Resource{
		{ID: 1, Title: "BIM Tutorial"},
		{ID: 2, Title: "PlanSwift Guide"},
	}
)

// ListForumsHandler returns the fixed forum list.
func ListForumsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, forums)
	}
}

// ListResourcesHandler returns the fixed resource list.
func ListResourcesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, resources)
	}
}

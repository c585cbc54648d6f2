package handler

import (
	"log/slog"
	"net/http"

	"workbench/internal/domain/services"
	"workbench/internal/httputil"
)

// AppHandler handles app HTTP requests.
// Handlers only communicate with services, never repositories.
type AppHandler struct {
	appService services.AppService
	logger     *slog.Logger
}

// NewAppHandler creates a new app handler
func NewAppHandler(appService services.AppService, logger *slog.Logger) *AppHandler {
	return &AppHandler{
		appService: appService,
		logger:     logger,
	}
}

// HealthCheck reports service liveness
// GET /health
func (h *AppHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CreateApp creates a new app owned by the caller
// POST /api/apps
func (h *AppHandler) CreateApp(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	var req services.CreateAppRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.TeamID = httputil.GetTeamID(r)
	req.OwnerID = callerID

	app, err := h.appService.CreateApp(r.Context(), &req)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"principal_id": callerID})
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, app)
}

// ListApps retrieves the team's apps visible to the caller
// GET /api/apps
func (h *AppHandler) ListApps(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)
	teamID := httputil.GetTeamID(r)

	apps, err := h.appService.ListApps(r.Context(), teamID, callerID)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"principal_id": callerID})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, apps)
}

// GetApp retrieves an app by id
// GET /api/apps/{id}
func (h *AppHandler) GetApp(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	appID := r.PathValue("id")
	if appID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "App ID is required")
		return
	}

	app, err := h.appService.GetApp(r.Context(), appID, callerID)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"app_id": appID, "principal_id": callerID})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, app)
}

// UpdateApp updates an app's display fields
// PATCH /api/apps/{id}
func (h *AppHandler) UpdateApp(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	appID := r.PathValue("id")
	if appID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "App ID is required")
		return
	}

	var req services.UpdateAppRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.appService.UpdateApp(r.Context(), appID, callerID, &req)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"app_id": appID, "principal_id": callerID})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, app)
}

// DeleteApp tears down an app and every dependent record atomically
// DELETE /api/apps/{id}
func (h *AppHandler) DeleteApp(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	appID := r.PathValue("id")
	if appID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "App ID is required")
		return
	}

	if err := h.appService.DeleteApp(r.Context(), appID, callerID); err != nil {
		HandleError(w, err, map[string]interface{}{"app_id": appID, "principal_id": callerID})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

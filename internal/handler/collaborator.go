package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"workbench/internal/domain/models"
	"workbench/internal/domain/services"
	"workbench/internal/httputil"
	"workbench/internal/permissions"
)

// CollaboratorHandler handles collaborator HTTP requests
type CollaboratorHandler struct {
	collabService services.CollaboratorService
	logger        *slog.Logger
}

// NewCollaboratorHandler creates a new collaborator handler
func NewCollaboratorHandler(collabService services.CollaboratorService, logger *slog.Logger) *CollaboratorHandler {
	return &CollaboratorHandler{
		collabService: collabService,
		logger:        logger,
	}
}

// ListCollaborators retrieves an app's grants with display labels
// GET /api/apps/{id}/collaborators
func (h *CollaboratorHandler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	appID := r.PathValue("id")
	if appID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "App ID is required")
		return
	}

	grants, err := h.collabService.ListCollaborators(r.Context(), appID, callerID)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"app_id": appID, "principal_id": callerID})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, grants)
}

// UpdateCollaborators grants one permission to a batch of principals and
// returns the refreshed grant list
// POST /api/apps/{id}/collaborators
func (h *CollaboratorHandler) UpdateCollaborators(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	appID := r.PathValue("id")
	if appID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "App ID is required")
		return
	}

	var req services.UpdateCollaboratorsRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.AppID = appID
	req.CallerID = callerID
	if req.PrincipalKind == "" {
		req.PrincipalKind = models.PrincipalMember
	}

	grants, err := h.collabService.UpdateCollaborators(r.Context(), &req)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"app_id": appID, "principal_id": callerID})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, grants)
}

// RemoveCollaborator deletes a single grant
// DELETE /api/apps/{id}/collaborators/{principalId}?kind=member|group
func (h *CollaboratorHandler) RemoveCollaborator(w http.ResponseWriter, r *http.Request) {
	callerID := httputil.GetPrincipalID(r)

	appID := r.PathValue("id")
	principalID := r.PathValue("principalId")
	if appID == "" || principalID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "App ID and principal ID are required")
		return
	}

	kind := models.PrincipalKind(r.URL.Query().Get("kind"))
	if kind == "" {
		kind = models.PrincipalMember
	}

	err := h.collabService.RemoveCollaborator(r.Context(), appID, callerID, principalID, kind)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"app_id": appID, "principal_id": callerID})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PermissionLabels renders the label sequence a permission value implies,
// used by the picker to preview a grant before confirming it
// GET /api/permissions/labels?value=N
func (h *CollaboratorHandler) PermissionLabels(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("value")
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "value must be an unsigned integer")
		return
	}

	labels := h.collabService.PreLabelList(permissions.Value(value))

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"value":  permissions.Value(value),
		"labels": labels,
	})
}

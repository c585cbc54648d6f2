package handler

import (
	"log/slog"
	"net/http"

	"workbench/internal/domain/repositories"
	"workbench/internal/httputil"
)

// MemberHandler serves the member directory used by the collaborator picker
type MemberHandler struct {
	directory repositories.MemberDirectory
	logger    *slog.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(directory repositories.MemberDirectory, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		directory: directory,
		logger:    logger,
	}
}

// ListTeamMembers retrieves the caller's team members as selectable
// collaborator candidates
// GET /api/team/members
func (h *MemberHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID := httputil.GetTeamID(r)
	if teamID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "no team in caller identity")
		return
	}

	members, err := h.directory.ListTeamMembers(r.Context(), teamID)
	if err != nil {
		HandleError(w, err, map[string]interface{}{"team_id": teamID})
		return
	}

	httputil.RespondJSON(w, http.StatusOK, members)
}

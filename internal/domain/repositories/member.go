package repositories

import (
	"context"

	"workbench/internal/domain/models"
)

// MemberDirectory resolves team membership and group membership. The core
// consumes group resolution as a black box - it never inspects how groups
// are formed, only which group ids a principal belongs to.
type MemberDirectory interface {
	// ListTeamMembers retrieves the selectable collaborator candidates for
	// a team. Used only to render pickers; authorization never depends on
	// the display metadata returned here.
	ListTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error)

	// ListGroupIDs returns the ids of every group the principal belongs
	// to. Returns an empty slice for principals with no groups.
	ListGroupIDs(ctx context.Context, principalID string) ([]string, error)
}

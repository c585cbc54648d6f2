package models

// TeamMember is a directory entry used to render selectable collaborator
// candidates. Display metadata never feeds authorization decisions.
type TeamMember struct {
	PrincipalID string `json:"principal_id" db:"principal_id"`
	TeamID      string `json:"team_id" db:"team_id"`
	DisplayName string `json:"display_name" db:"display_name"`
	Avatar      string `json:"avatar,omitempty" db:"avatar"`
}

package models

import (
	"time"

	"workbench/internal/permissions"
)

// PrincipalKind distinguishes the two grantable principal types.
type PrincipalKind string

const (
	// PrincipalMember is an individual team member.
	PrincipalMember PrincipalKind = "member"

	// PrincipalGroup is a member group; membership resolution is owned by
	// the directory, grants only store the group id.
	PrincipalGroup PrincipalKind = "group"
)

// Valid reports whether k is a known principal kind.
func (k PrincipalKind) Valid() bool {
	return k == PrincipalMember || k == PrincipalGroup
}

// Collaborator is one stored grant: a (principal, permission) pair scoped to
// a single app. At most one grant exists per (app, principal, kind) - adding
// an existing principal replaces its permission rather than duplicating.
type Collaborator struct {
	ID            string            `json:"id" db:"id"`
	AppID         string            `json:"app_id" db:"app_id"`
	PrincipalID   string            `json:"principal_id" db:"principal_id"`
	PrincipalKind PrincipalKind     `json:"principal_kind" db:"principal_kind"`
	Permission    permissions.Value `json:"permission" db:"permission"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// LabeledCollaborator decorates a grant with the catalog labels its
// permission value implies, for display. Labels are derived on read, never
// stored.
type LabeledCollaborator struct {
	Collaborator
	Labels []string `json:"labels"`
}

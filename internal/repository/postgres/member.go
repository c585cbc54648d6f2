package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/domain/repositories"
)

// PostgresMemberDirectory implements the MemberDirectory interface using
// PostgreSQL. Group membership lives in its own table; the core only ever
// reads the resolved group ids.
type PostgresMemberDirectory struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMemberDirectory creates a new PostgresMemberDirectory
func NewMemberDirectory(config *RepositoryConfig) repositories.MemberDirectory {
	return &PostgresMemberDirectory{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// ListTeamMembers retrieves the selectable collaborator candidates for a team
func (r *PostgresMemberDirectory) ListTeamMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	query := fmt.Sprintf(`
		SELECT principal_id, team_id, display_name, avatar
		FROM %s
		WHERE team_id = $1
		ORDER BY display_name
	`, r.tables.TeamMembers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	members := []models.TeamMember{}
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.PrincipalID, &m.TeamID, &m.DisplayName, &m.Avatar); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team members: %w", err)
	}

	return members, nil
}

// ListGroupIDs returns the ids of every group the principal belongs to
func (r *PostgresMemberDirectory) ListGroupIDs(ctx context.Context, principalID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT group_id
		FROM %s
		WHERE principal_id = $1
		ORDER BY group_id
	`, r.tables.GroupMembers)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, principalID)
	if err != nil {
		return nil, fmt.Errorf("list group ids: %w", err)
	}
	defer rows.Close()

	groupIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan group id: %w", err)
		}
		groupIDs = append(groupIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group ids: %w", err)
	}

	return groupIDs, nil
}

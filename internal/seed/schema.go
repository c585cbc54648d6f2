package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/repository/postgres"
)

// RunSchema creates tables if they don't exist. Dependent tables carry no
// ON DELETE CASCADE to the apps table on purpose: teardown deletes each
// record class explicitly inside one transaction, so the cascade order
// stays visible and auditable in application code.
func RunSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Apps + ` (
			id UUID PRIMARY KEY,
			team_id UUID NOT NULL,
			owner_id UUID NOT NULL,
			name TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			intro TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(team_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Collaborators + ` (
			id UUID PRIMARY KEY,
			app_id UUID NOT NULL,
			principal_id UUID NOT NULL,
			principal_kind TEXT NOT NULL CHECK (principal_kind IN ('member', 'group')),
			permission BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(app_id, principal_id, principal_kind)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Chats + ` (
			id UUID PRIMARY KEY,
			app_id UUID NOT NULL,
			user_id UUID NOT NULL,
			title TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ChatItems + ` (
			id UUID PRIMARY KEY,
			chat_id UUID NOT NULL,
			app_id UUID NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.OutLinks + ` (
			id UUID PRIMARY KEY,
			app_id UUID NOT NULL,
			share_id TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			usage_hits INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.AppVersions + ` (
			id UUID PRIMARY KEY,
			app_id UUID NOT NULL,
			label TEXT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.InputGuides + ` (
			id UUID PRIMARY KEY,
			app_id UUID NOT NULL,
			text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.TeamMembers + ` (
			principal_id UUID NOT NULL,
			team_id UUID NOT NULL,
			display_name TEXT NOT NULL,
			avatar TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (team_id, principal_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.GroupMembers + ` (
			group_id UUID NOT NULL,
			principal_id UUID NOT NULL,
			PRIMARY KEY (group_id, principal_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `collaborators_app ON ` + tables.Collaborators + `(app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chats_app ON ` + tables.Chats + `(app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `chat_items_app ON ` + tables.ChatItems + `(app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `out_links_app ON ` + tables.OutLinks + `(app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `app_versions_app ON ` + tables.AppVersions + `(app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `input_guides_app ON ` + tables.InputGuides + `(app_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `group_members_principal ON ` + tables.GroupMembers + `(principal_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}

// DropAllTables drops all tables, used only by dev tooling
func DropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.ChatItems,
		tables.Chats,
		tables.OutLinks,
		tables.AppVersions,
		tables.InputGuides,
		tables.Collaborators,
		tables.Apps,
		tables.TeamMembers,
		tables.GroupMembers,
	}

	for _, table := range tableNames {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}

	return nil
}

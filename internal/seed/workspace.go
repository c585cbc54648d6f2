package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/models"
	"workbench/internal/permissions"
	"workbench/internal/repository/postgres"
)

// Fixed ids so repeated seeding targets the same demo workspace.
const (
	DemoTeamID   = "2f1c9f5e-0000-4000-8000-000000000001"
	DemoOwnerID  = "2f1c9f5e-0000-4000-8000-000000000010"
	DemoEditorID = "2f1c9f5e-0000-4000-8000-000000000011"
	DemoViewerID = "2f1c9f5e-0000-4000-8000-000000000012"
	DemoGroupID  = "2f1c9f5e-0000-4000-8000-000000000020"
	DemoAppID    = "2f1c9f5e-0000-4000-8000-000000000100"
)

// Workspace seeds a demo team with one app, collaborator grants and a full
// set of dependent records, so every teardown step has something to delete.
func Workspace(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, logger *slog.Logger) error {
	now := time.Now()

	members := []models.TeamMember{
		{PrincipalID: DemoOwnerID, TeamID: DemoTeamID, DisplayName: "Ada Owens", Avatar: "/avatars/ada.png"},
		{PrincipalID: DemoEditorID, TeamID: DemoTeamID, DisplayName: "Edi Torres", Avatar: "/avatars/edi.png"},
		{PrincipalID: DemoViewerID, TeamID: DemoTeamID, DisplayName: "Vic Reeder", Avatar: "/avatars/vic.png"},
	}
	for _, m := range members {
		query := `
			INSERT INTO ` + tables.TeamMembers + ` (principal_id, team_id, display_name, avatar)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (team_id, principal_id) DO NOTHING
		`
		if _, err := pool.Exec(ctx, query, m.PrincipalID, m.TeamID, m.DisplayName, m.Avatar); err != nil {
			return fmt.Errorf("seed team member: %w", err)
		}
	}

	// Viewer reaches the app only through the group grant below
	groupQuery := `
		INSERT INTO ` + tables.GroupMembers + ` (group_id, principal_id)
		VALUES ($1, $2)
		ON CONFLICT (group_id, principal_id) DO NOTHING
	`
	if _, err := pool.Exec(ctx, groupQuery, DemoGroupID, DemoViewerID); err != nil {
		return fmt.Errorf("seed group member: %w", err)
	}

	appQuery := `
		INSERT INTO ` + tables.Apps + ` (id, team_id, owner_id, name, avatar, intro, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := pool.Exec(ctx, appQuery,
		DemoAppID, DemoTeamID, DemoOwnerID,
		"Support Assistant", "/avatars/app.png", "Answers support questions from the docs", now,
	); err != nil {
		return fmt.Errorf("seed app: %w", err)
	}

	grants := []struct {
		principalID string
		kind        models.PrincipalKind
		perm        permissions.Value
	}{
		{DemoEditorID, models.PrincipalMember, permissions.Write},
		{DemoGroupID, models.PrincipalGroup, permissions.Read},
	}
	for _, g := range grants {
		query := `
			INSERT INTO ` + tables.Collaborators + ` (id, app_id, principal_id, principal_kind, permission, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			ON CONFLICT (app_id, principal_id, principal_kind) DO NOTHING
		`
		if _, err := pool.Exec(ctx, query, uuid.NewString(), DemoAppID, g.principalID, g.kind, g.perm, now); err != nil {
			return fmt.Errorf("seed grant: %w", err)
		}
	}

	chatID := uuid.NewString()
	chatQuery := `
		INSERT INTO ` + tables.Chats + ` (id, app_id, user_id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`
	if _, err := pool.Exec(ctx, chatQuery, chatID, DemoAppID, DemoViewerID, "Where are my invoices?", now); err != nil {
		return fmt.Errorf("seed chat: %w", err)
	}

	items := []struct {
		role    string
		content string
	}{
		{"user", "Where can I download my invoices?"},
		{"assistant", "Open Billing and pick Invoices - every statement has a PDF download."},
	}
	for _, item := range items {
		query := `
			INSERT INTO ` + tables.ChatItems + ` (id, chat_id, app_id, role, content, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := pool.Exec(ctx, query, uuid.NewString(), chatID, DemoAppID, item.role, item.content, now); err != nil {
			return fmt.Errorf("seed chat item: %w", err)
		}
	}

	linkQuery := `
		INSERT INTO ` + tables.OutLinks + ` (id, app_id, share_id, name, usage_hits, created_at)
		VALUES ($1, $2, $3, $4, 0, $5)
		ON CONFLICT (share_id) DO NOTHING
	`
	if _, err := pool.Exec(ctx, linkQuery, uuid.NewString(), DemoAppID, "demo-share", "Public demo link", now); err != nil {
		return fmt.Errorf("seed out link: %w", err)
	}

	payload, err := json.Marshal(map[string]interface{}{"nodes": []string{}, "edges": []string{}})
	if err != nil {
		return fmt.Errorf("marshal version payload: %w", err)
	}
	versionQuery := `
		INSERT INTO ` + tables.AppVersions + ` (id, app_id, label, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := pool.Exec(ctx, versionQuery, uuid.NewString(), DemoAppID, "v1", payload, now); err != nil {
		return fmt.Errorf("seed app version: %w", err)
	}

	guides := []string{
		"How do I reset my password?",
		"Where can I download my invoices?",
	}
	for _, text := range guides {
		query := `
			INSERT INTO ` + tables.InputGuides + ` (id, app_id, text, created_at)
			VALUES ($1, $2, $3, $4)
		`
		if _, err := pool.Exec(ctx, query, uuid.NewString(), DemoAppID, text, now); err != nil {
			return fmt.Errorf("seed input guide: %w", err)
		}
	}

	logger.Info("demo workspace seeded",
		"team_id", DemoTeamID,
		"app_id", DemoAppID,
	)

	return nil
}

// ClearAppData deletes the demo app's dependent records so seeding can be
// re-run from a clean slate without dropping tables.
func ClearAppData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, appID string) error {
	deletes := []string{
		"DELETE FROM " + tables.ChatItems + " WHERE app_id = $1",
		"DELETE FROM " + tables.Chats + " WHERE app_id = $1",
		"DELETE FROM " + tables.OutLinks + " WHERE app_id = $1",
		"DELETE FROM " + tables.AppVersions + " WHERE app_id = $1",
		"DELETE FROM " + tables.InputGuides + " WHERE app_id = $1",
		"DELETE FROM " + tables.Collaborators + " WHERE app_id = $1",
	}

	for _, query := range deletes {
		if _, err := pool.Exec(ctx, query, appID); err != nil {
			return err
		}
	}

	return nil
}

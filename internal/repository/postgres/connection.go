package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"workbench/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names. One entry per record
// class the teardown cascades over, plus the directory tables.
type TableNames struct {
	Apps          string
	Collaborators string
	Chats         string
	ChatItems     string
	OutLinks      string
	AppVersions   string
	InputGuides   string
	TeamMembers   string
	GroupMembers  string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Apps:          fmt.Sprintf("%sapps", prefix),
		Collaborators: fmt.Sprintf("%sapp_collaborators", prefix),
		Chats:         fmt.Sprintf("%schats", prefix),
		ChatItems:     fmt.Sprintf("%schat_items", prefix),
		OutLinks:      fmt.Sprintf("%sout_links", prefix),
		AppVersions:   fmt.Sprintf("%sapp_versions", prefix),
		InputGuides:   fmt.Sprintf("%sinput_guides", prefix),
		TeamMembers:   fmt.Sprintf("%steam_members", prefix),
		GroupMembers:  fmt.Sprintf("%sgroup_members", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL
// strings before they reach the database, so each environment gets its own
// prepared statements - the prefix never travels as a bind parameter.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}

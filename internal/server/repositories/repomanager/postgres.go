// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/migrations"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/attachments"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/expenses"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/incomes"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/notes"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/refreshtokens"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/shares"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// RefreshTokens returns a refreshtokens.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

// Notes returns a notes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Notes(db dbx.DBTX) notes.Repository {
	return notes.NewPostgresRepository(db)
}

// Shares returns a shares.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Shares(db dbx.DBTX) shares.Repository {
	return shares.NewPostgresRepository(db)
}

// Incomes returns an incomes.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Incomes(db dbx.DBTX) incomes.Repository {
	return incomes.NewPostgresRepository(db)
}

// Expenses returns an expenses.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Expenses(db dbx.DBTX) expenses.Repository {
	return expenses.NewPostgresRepository(db)
}

// Attachments returns an attachments.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Attachments(db dbx.DBTX) attachments.Repository {
	return attachments.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

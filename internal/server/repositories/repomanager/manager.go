package repomanager

import (
	"context"
	"database/sql"

	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/attachments"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/expenses"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/incomes"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/notes"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/refreshtokens"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/shares"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Notes(db dbx.DBTX) notes.Repository
	Shares(db dbx.DBTX) shares.Repository
	Incomes(db dbx.DBTX) incomes.Repository
	Expenses(db dbx.DBTX) expenses.Repository
	Attachments(db dbx.DBTX) attachments.Repository
}

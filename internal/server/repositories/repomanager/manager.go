// Package repomanager vends repository implementations bound to a DB handle
// and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/sprov007/payserver/internal/dbx"
	"github.com/sprov007/payserver/internal/server/repositories/payments"
	"github.com/sprov007/payserver/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to either the pool or a
// transaction, so services can run a flow on one connection when needed.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Payments(db dbx.DBTX) payments.Repository
}

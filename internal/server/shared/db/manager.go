// Package db wires repositories to their storage backend. A
// RepositoryManager owns the connection (if any) and hands out the
// per-feature repositories built on top of it.
package db

import (
	"context"
	"database/sql"

	"habitkeeper/internal/server/entries"
	"habitkeeper/internal/server/refreshtokens"
	"habitkeeper/internal/server/trackers"
	"habitkeeper/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Trackers() trackers.Repository
	Entries() entries.Repository
}

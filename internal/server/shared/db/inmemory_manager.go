package db

import (
	"context"
	"database/sql"

	"habitkeeper/internal/server/entries"
	"habitkeeper/internal/server/refreshtokens"
	"habitkeeper/internal/server/trackers"
	"habitkeeper/internal/server/users"
)

// InMemoryRepositoryManager backs every repository with process memory.
// Used in tests and when no DSN is configured; data does not survive a
// restart.
type InMemoryRepositoryManager struct {
	users         users.Repository
	refreshTokens refreshtokens.Repository
	trackers      trackers.Repository
	entries       entries.Repository
}

func (m InMemoryRepositoryManager) Conn() *sql.DB {
	return nil
}

func (m InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m InMemoryRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m InMemoryRepositoryManager) Trackers() trackers.Repository {
	return m.trackers
}

func (m InMemoryRepositoryManager) Entries() entries.Repository {
	return m.entries
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return InMemoryRepositoryManager{
		users:         users.NewInMemoryRepository(),
		refreshTokens: refreshtokens.NewInMemoryRepository(),
		trackers:      trackers.NewInMemoryRepository(),
		entries:       entries.NewInMemoryRepository(),
	}
}

package refreshtokens

import (
	"context"
	"time"

	"habitkeeper/internal/dbx"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// FindUserID resolves the token to its user. Missing tokens return
	// common.ErrorNotFound, expired ones common.ErrRefreshTokenExpired.
	FindUserID(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
	// WithTx returns a repository bound to tx, so token rotation can run
	// inside a transaction.
	WithTx(tx dbx.DBTX) Repository
}

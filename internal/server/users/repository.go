package users

import (
	"context"

	"habitkeeper/internal/server/models"
)

type Repository interface {
	// Create persists a new user with the bcrypt hash of their password.
	Create(ctx context.Context, user *models.User, passwordHash string) error
	// GetByEmail returns common.ErrorNotFound when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetPasswordHash(ctx context.Context, email string) (string, error)
}

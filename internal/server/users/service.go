package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitkeeper/internal/common"
	"habitkeeper/internal/dbx"
	"habitkeeper/internal/server/auth"
	"habitkeeper/internal/server/config"
	"habitkeeper/internal/server/models"
	"habitkeeper/internal/server/refreshtokens"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type Service struct {
	repo                         Repository
	refreshTokenRepo             refreshtokens.Repository
	db                           *sql.DB // nil when the backing store is not SQL
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int
	now                          func() time.Time
}

func NewService(repo Repository, refreshTokenRepo refreshtokens.Repository, db *sql.DB, cfg *config.Config) *Service {
	return &Service{
		repo:                         repo,
		refreshTokenRepo:             refreshTokenRepo,
		db:                           db,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   cfg.BcryptCost,
		now:                          time.Now,
	}
}

// Register creates an account. Email must look like an address and be
// unclaimed; passwords must be at least 8 characters.
func (s *Service) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", common.ErrInvalidEmail, email)
	}
	if len(password) < 8 {
		return nil, common.ErrWeakPassword
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:        "user_" + uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, user, hash); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	hash, err := s.repo.GetPasswordHash(ctx, email)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if !auth.VerifyPassword(password, hash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issueTokens(ctx, user.ID, s.refreshTokenRepo)
}

// Refresh rotates a refresh token: the old token is invalidated and a fresh
// pair is issued. On SQL backends the rotation runs in one transaction, so a
// failure while issuing the new token leaves the old one usable.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.refreshTokenRepo.FindUserID(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrRefreshTokenExpired) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	var pair *TokenPair
	rotate := func(ctx context.Context, repo refreshtokens.Repository) error {
		if err := repo.Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var issueErr error
		pair, issueErr = s.issueTokens(ctx, userID, repo)
		return issueErr
	}

	if s.db != nil {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return rotate(ctx, s.refreshTokenRepo.WithTx(tx))
		})
	} else {
		err = rotate(ctx, s.refreshTokenRepo)
	}
	if err != nil {
		return nil, common.ErrorInternal
	}
	return pair, nil
}

// Get resolves a user by id.
func (s *Service) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) issueTokens(ctx context.Context, userID string, repo refreshtokens.Repository) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := repo.Create(ctx, userID, refreshToken, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

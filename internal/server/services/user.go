package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sprov007/payserver/internal/common"
	"github.com/sprov007/payserver/internal/server/auth"
	"github.com/sprov007/payserver/internal/server/config"
	"github.com/sprov007/payserver/internal/server/models"
	"github.com/sprov007/payserver/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users
// - Login: verify credentials and mint a session token
// - GetByID: resolve a token's user id back to an identity
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with a bcrypt hash of rawPassword. A
// registration under an email already on file yields
// common.ErrorDuplicateEmail.
func (s *UserService) Register(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	for _, r := range []struct{ field, value string }{
		{"username", username},
		{"email", email},
		{"password", rawPassword},
	} {
		if r.value == "" {
			return nil, common.NewValidationError(r.field, "required")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{UserName: username, Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a signed session
// token together with the user. The error never reveals whether the email
// or the password was wrong.
func (s *UserService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil, common.ErrorUnauthorized
		}
		return "", nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(rawPassword)) != nil {
		return "", nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", nil, common.ErrorInternal
	}

	return token, user, nil
}

// GetByID resolves a user id to its identity record. Unknown ids yield
// common.ErrorNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// Package users provides persistence for identity records.
package users

import (
	"context"

	"github.com/sprov007/payserver/internal/server/models"
)

// Repository is the credential store contract. Implementations report a
// duplicate email as common.ErrorDuplicateEmail and an absent row as
// common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

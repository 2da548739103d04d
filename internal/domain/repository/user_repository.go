package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-auth-service/internal/domain/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned by Insert when the user name is taken.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository persists users keyed by unique user name.
// Implementations must be safe for concurrent use.
type UserRepository interface {
	// FindByUserName returns ErrUserNotFound when no user has exactly userName.
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)

	// Insert stores u and fills in u.ID and u.CreatedAt. The uniqueness check
	// and the write are atomic: of two concurrent inserts for the same name
	// one gets ErrUserAlreadyExists. On any error nothing is stored.
	Insert(ctx context.Context, u *entity.User) error
}

// Package redisstore keeps users as JSON documents in Redis.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-auth-service/internal/domain/entity"
	"github.com/oksasatya/go-auth-service/internal/domain/repository"
	"github.com/oksasatya/go-auth-service/pkg/helpers"
)

const keyPrefix = "user:name:"

type userDoc struct {
	ID           string    `json:"id"`
	UserName     string    `json:"userName"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UserRepository struct {
	rdb *redis.Client
	now func() time.Time
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(rdb *redis.Client) *UserRepository {
	return &UserRepository{rdb: rdb, now: time.Now}
}

func userKey(userName string) string { return keyPrefix + userName }

func (r *UserRepository) FindByUserName(ctx context.Context, userName string) (*entity.User, error) {
	var doc userDoc
	found, err := helpers.RedisGetJSON(ctx, r.rdb, userKey(userName), &doc)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", userName, err)
	}
	if !found {
		return nil, repository.ErrUserNotFound
	}
	return &entity.User{
		ID:           doc.ID,
		UserName:     doc.UserName,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// Insert claims the name key with SETNX, so the check and write are one step.
func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	doc := userDoc{
		ID:           uuid.NewString(),
		UserName:     u.UserName,
		PasswordHash: u.PasswordHash,
		CreatedAt:    r.now().UTC(),
	}
	ok, err := helpers.RedisSetNXJSON(ctx, r.rdb, userKey(u.UserName), doc, 0)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if !ok {
		return repository.ErrUserAlreadyExists
	}
	u.ID = doc.ID
	u.CreatedAt = doc.CreatedAt
	return nil
}

package service

import (
	"context"

	"go-bloglist-api/internal/event"
	"go-bloglist-api/internal/model"
)

// UserStore is the identity store contract shared by the PostgreSQL and
// in-memory repositories.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	AppendBlog(ctx context.Context, userID string, blogID string) error
	List(ctx context.Context) ([]model.User, error)
}

// BlogStore is the resource store contract.
type BlogStore interface {
	Create(ctx context.Context, b model.Blog) (model.Blog, error)
	FindByID(ctx context.Context, id string) (model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	UpdateLikes(ctx context.Context, id string, likes int) (model.Blog, error)
	Delete(ctx context.Context, id string) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) bool
}

type TokenVerifier interface {
	Verify(token string) (*model.AuthClaims, error)
}

type TokenIssuer interface {
	Issue(user model.User) (string, error)
}

type publisher interface {
	Publish(e event.Event)
}

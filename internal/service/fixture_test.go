package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-bloglist-api/internal/config"
	"go-bloglist-api/internal/event"
	"go-bloglist-api/internal/model"
	"go-bloglist-api/internal/repository"
)

type fixture struct {
	store  *repository.MemoryStore
	hasher *BcryptHasher
	tokens *TokenService
	bus    *event.InMemoryBus

	blogs *BlogService
	users *UserService
	login *LoginService
}

func newFixture(t *testing.T, likesPolicy string) *fixture {
	t.Helper()

	if likesPolicy == "" {
		likesPolicy = config.LikesPolicyPublic
	}

	tokens, err := NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	bus := event.NewBus()

	return &fixture{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		bus:    bus,
		blogs:  NewBlogService(store.Blogs(), store.Users(), tokens, bus, likesPolicy),
		users:  NewUserService(store.Users(), store.Blogs(), hasher, bus),
		login:  NewLoginService(store.Users(), hasher, tokens),
	}
}

// signup registers a user and returns it together with a valid token.
func (f *fixture) signup(t *testing.T, username string) (model.UserResponse, string) {
	t.Helper()

	user, err := f.users.Create(context.Background(), model.CreateUserRequest{
		Username: username,
		Name:     "Name of " + username,
		Password: "sekret",
	})
	require.NoError(t, err)

	token, err := f.tokens.Issue(model.User{ID: user.ID, Username: user.Username})
	require.NoError(t, err)

	return user, token
}

func (f *fixture) createBlog(t *testing.T, token string, title string, likes int) model.BlogResponse {
	t.Helper()

	blog, err := f.blogs.Create(context.Background(), token, model.CreateBlogRequest{
		Title:  title,
		Author: "Author of " + title,
		URL:    "https://example.com/" + title,
		Likes:  &likes,
	})
	require.NoError(t, err)
	return blog
}

func intPtr(v int) *int {
	return &v
}

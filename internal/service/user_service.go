package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go-bloglist-api/internal/event"
	"go-bloglist-api/internal/model"
	"go-bloglist-api/pkg/apierror"
)

type UserService struct {
	users  UserStore
	blogs  BlogStore
	hasher PasswordHasher
	bus    publisher
}

func NewUserService(users UserStore, blogs BlogStore, hasher PasswordHasher, bus event.Bus) *UserService {
	return &UserService{users: users, blogs: blogs, hasher: hasher, bus: bus}
}

// Create registers a user. Username uniqueness is left to the store's unique
// index; a conflict comes back as *model.ConflictError.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.UserResponse, error) {
	if utf8.RuneCountInString(req.Password) < model.PasswordMinLength {
		return model.UserResponse{}, apierror.BadRequest("password must be at least 3 characters long")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.UserResponse{}, err
	}

	created, err := s.users.Create(ctx, model.User{
		Username:     strings.TrimSpace(req.Username),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	})
	if err != nil {
		return model.UserResponse{}, err
	}

	if s.bus != nil {
		s.bus.Publish(event.New(event.TypeUserCreated, created.ID, map[string]string{"username": created.Username}))
	}

	return toUserResponse(created, nil), nil
}

// List returns all users with their blogs populated from the denormalized
// list. Ids that no longer resolve to a blog are skipped.
func (s *UserService) List(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Blog, len(blogs))
	for _, b := range blogs {
		byID[strings.ToLower(b.ID)] = b
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u, byID))
	}
	return out, nil
}

func toUserResponse(u model.User, blogs map[string]model.Blog) model.UserResponse {
	resp := model.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Blogs:    make([]model.BlogSummary, 0, len(u.BlogIDs)),
	}
	for _, id := range u.BlogIDs {
		if b, ok := blogs[strings.ToLower(id)]; ok {
			resp.Blogs = append(resp.Blogs, b.Summary())
		}
	}
	return resp
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go-bloglist-api/internal/config"
	"go-bloglist-api/internal/event"
	"go-bloglist-api/internal/model"
	"go-bloglist-api/pkg/apierror"
)

type BlogService struct {
	blogs       BlogStore
	users       UserStore
	tokens      TokenVerifier
	bus         publisher
	likesPolicy string
}

func NewBlogService(blogs BlogStore, users UserStore, tokens TokenVerifier, bus event.Bus, likesPolicy string) *BlogService {
	if likesPolicy == "" {
		likesPolicy = config.LikesPolicyPublic
	}
	return &BlogService{
		blogs:       blogs,
		users:       users,
		tokens:      tokens,
		bus:         bus,
		likesPolicy: likesPolicy,
	}
}

// List returns every blog with its owner populated.
func (s *BlogService) List(ctx context.Context) ([]model.BlogResponse, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return nil, err
	}

	owners, err := s.ownerIndex(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toBlogResponse(b, owners[b.UserID]))
	}
	return out, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (model.BlogResponse, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return model.BlogResponse{}, apierror.NotFound("blog not found")
		}
		return model.BlogResponse{}, err
	}
	return s.populate(ctx, blog), nil
}

// Create stores the blog first and then appends it to the owner's list. A
// failure of the second step leaves the blog in place and is reported as an
// unclassified error.
func (s *BlogService) Create(ctx context.Context, token string, req model.CreateBlogRequest) (model.BlogResponse, error) {
	claims, err := authenticate(s.tokens, token)
	if err != nil {
		return model.BlogResponse{}, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, model.ErrMalformedID) {
			return model.BlogResponse{}, apierror.NotFound("user not found")
		}
		return model.BlogResponse{}, err
	}

	blog := model.Blog{
		Title:  strings.TrimSpace(req.Title),
		Author: strings.TrimSpace(req.Author),
		URL:    strings.TrimSpace(req.URL),
		UserID: user.ID,
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}
	if err := blog.Validate(); err != nil {
		return model.BlogResponse{}, err
	}

	saved, err := s.blogs.Create(ctx, blog)
	if err != nil {
		return model.BlogResponse{}, err
	}

	if err := s.users.AppendBlog(ctx, user.ID, saved.ID); err != nil {
		slog.Error("blog stored but owner list not updated", "blog_id", saved.ID, "user_id", user.ID, "error", err)
		return model.BlogResponse{}, fmt.Errorf("link blog %s to owner %s: %w", saved.ID, user.ID, err)
	}

	s.publish(event.TypeBlogCreated, user.ID, saved.Summary())

	return toBlogResponse(saved, ownerOf(user)), nil
}

// Delete removes a blog owned by the token's identity. Ownership is checked
// against Blog.UserID and the token claim, never the owner's blog list.
func (s *BlogService) Delete(ctx context.Context, token string, id string) error {
	claims, err := authenticate(s.tokens, token)
	if err != nil {
		return err
	}

	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		slog.Debug("requesting user not resolved", "user_id", claims.UserID, "error", err)
	}

	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return apierror.NotFound("blog not found")
		}
		return err
	}

	if !sameID(blog.UserID, claims.UserID) {
		return apierror.Forbidden("unauthorized: cannot delete others' blogs")
	}

	if err := s.blogs.Delete(ctx, blog.ID); err != nil {
		if errors.Is(err, model.ErrBlogNotFound) {
			return apierror.NotFound("blog not found")
		}
		return err
	}

	s.publish(event.TypeBlogDeleted, claims.UserID, blog.Summary())
	return nil
}

// UpdateLikes replaces the like counter. The id is checked and the blog
// resolved before anything else; a missing blog is returned as
// model.ErrBlogNotFound so the transport can answer with an empty 404. Who may
// call it depends on the configured likes policy. A request without a likes
// value leaves the blog unchanged.
func (s *BlogService) UpdateLikes(ctx context.Context, token string, id string, req model.UpdateLikesRequest) (model.BlogResponse, error) {
	blog, err := s.blogs.FindByID(ctx, id)
	if err != nil {
		return model.BlogResponse{}, err
	}

	actorID := ""
	if s.likesPolicy != config.LikesPolicyPublic {
		claims, err := authenticate(s.tokens, token)
		if err != nil {
			return model.BlogResponse{}, err
		}
		actorID = claims.UserID

		if s.likesPolicy == config.LikesPolicyOwner && !sameID(blog.UserID, claims.UserID) {
			return model.BlogResponse{}, apierror.Forbidden("unauthorized: cannot update others' blogs")
		}
	}

	if req.Likes == nil {
		return s.populate(ctx, blog), nil
	}

	updated, err := s.blogs.UpdateLikes(ctx, blog.ID, *req.Likes)
	if err != nil {
		return model.BlogResponse{}, err
	}

	s.publish(event.TypeBlogLiked, actorID, map[string]any{"id": updated.ID, "likes": updated.Likes})

	return s.populate(ctx, updated), nil
}

func (s *BlogService) Stats(ctx context.Context) (model.BlogStats, error) {
	blogs, err := s.blogs.List(ctx)
	if err != nil {
		return model.BlogStats{}, err
	}

	stats := model.BlogStats{
		TotalLikes: TotalLikes(blogs),
		MostBlogs:  MostBlogs(blogs),
		MostLikes:  MostLikes(blogs),
	}
	if favorite := FavoriteBlog(blogs); favorite != nil {
		resp := s.populate(ctx, *favorite)
		stats.FavoriteBlog = &resp
	}
	return stats, nil
}

// populate resolves the owner for a single blog. An owner that cannot be
// resolved is reported by id only.
func (s *BlogService) populate(ctx context.Context, b model.Blog) model.BlogResponse {
	owner := model.Owner{ID: b.UserID}
	if user, err := s.users.FindByID(ctx, b.UserID); err == nil {
		owner = ownerOf(user)
	}
	return toBlogResponse(b, owner)
}

func (s *BlogService) ownerIndex(ctx context.Context) (map[string]model.Owner, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]model.Owner, len(users))
	for _, u := range users {
		index[u.ID] = ownerOf(u)
	}
	return index, nil
}

func (s *BlogService) publish(typ event.Type, actorID string, payload any) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(event.New(typ, actorID, payload))
}

func ownerOf(u model.User) model.Owner {
	return model.Owner{ID: u.ID, Username: u.Username, Name: u.Name}
}

func toBlogResponse(b model.Blog, owner model.Owner) model.BlogResponse {
	if owner.ID == "" {
		owner.ID = b.UserID
	}
	return model.BlogResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		URL:    b.URL,
		Likes:  b.Likes,
		User:   &owner,
	}
}

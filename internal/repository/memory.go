package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-bloglist-api/internal/model"
)

// MemoryStore keeps users and blogs in process memory. It enforces the same
// schema, identifier and uniqueness rules as the PostgreSQL store and is used
// for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]model.User
	usernames map[string]string
	userOrder []string
	blogs     map[string]model.Blog
	blogOrder []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     map[string]model.User{},
		usernames: map[string]string{},
		blogs:     map[string]model.Blog{},
	}
}

// Users returns the identity store view of the memory store.
func (s *MemoryStore) Users() *MemoryUserRepository {
	return &MemoryUserRepository{store: s}
}

// Blogs returns the resource store view of the memory store.
func (s *MemoryStore) Blogs() *MemoryBlogRepository {
	return &MemoryBlogRepository{store: s}
}

type MemoryUserRepository struct {
	store *MemoryStore
}

func (r *MemoryUserRepository) Create(_ context.Context, u model.User) (model.User, error) {
	if err := u.Validate(); err != nil {
		return model.User{}, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usernames[u.Username]; exists {
		return model.User{}, &model.ConflictError{Field: "username"}
	}

	u.ID = uuid.NewString()
	u.BlogIDs = []string{}
	u.CreatedAt = time.Now().UTC()

	s.users[u.ID] = u
	s.usernames[u.Username] = u.ID
	s.userOrder = append(s.userOrder, u.ID)

	return cloneUser(u), nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id string) (model.User, error) {
	id, err := canonicalID(id)
	if err != nil {
		return model.User{}, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, exists := s.users[id]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.usernames[username]
	if !exists {
		return model.User{}, model.ErrUserNotFound
	}
	return cloneUser(s.users[id]), nil
}

func (r *MemoryUserRepository) AppendBlog(_ context.Context, userID string, blogID string) error {
	userID, err := canonicalID(userID)
	if err != nil {
		return err
	}
	blogID, err = canonicalID(blogID)
	if err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[userID]
	if !exists {
		return model.ErrUserNotFound
	}
	u.BlogIDs = append(slices.Clone(u.BlogIDs), blogID)
	s.users[userID] = u
	return nil
}

func (r *MemoryUserRepository) List(_ context.Context) ([]model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, cloneUser(s.users[id]))
	}
	return users, nil
}

func (r *MemoryUserRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.users), nil
}

type MemoryBlogRepository struct {
	store *MemoryStore
}

func (r *MemoryBlogRepository) Create(_ context.Context, b model.Blog) (model.Blog, error) {
	if err := b.Validate(); err != nil {
		return model.Blog{}, err
	}
	ownerID, err := canonicalID(b.UserID)
	if err != nil {
		return model.Blog{}, err
	}
	b.UserID = ownerID

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()

	s.blogs[b.ID] = b
	s.blogOrder = append(s.blogOrder, b.ID)
	return b, nil
}

func (r *MemoryBlogRepository) FindByID(_ context.Context, id string) (model.Blog, error) {
	id, err := canonicalID(id)
	if err != nil {
		return model.Blog{}, err
	}

	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.blogs[id]
	if !exists {
		return model.Blog{}, model.ErrBlogNotFound
	}
	return b, nil
}

func (r *MemoryBlogRepository) List(_ context.Context) ([]model.Blog, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	blogs := make([]model.Blog, 0, len(s.blogOrder))
	for _, id := range s.blogOrder {
		blogs = append(blogs, s.blogs[id])
	}
	return blogs, nil
}

func (r *MemoryBlogRepository) UpdateLikes(_ context.Context, id string, likes int) (model.Blog, error) {
	id, err := canonicalID(id)
	if err != nil {
		return model.Blog{}, err
	}
	if err := model.ValidateLikes(likes); err != nil {
		return model.Blog{}, err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exists := s.blogs[id]
	if !exists {
		return model.Blog{}, model.ErrBlogNotFound
	}
	b.Likes = likes
	s.blogs[id] = b
	return b, nil
}

func (r *MemoryBlogRepository) Delete(_ context.Context, id string) error {
	id, err := canonicalID(id)
	if err != nil {
		return err
	}

	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.blogs[id]; !exists {
		return model.ErrBlogNotFound
	}
	delete(s.blogs, id)
	s.blogOrder = slices.DeleteFunc(s.blogOrder, func(candidate string) bool {
		return candidate == id
	})
	return nil
}

func (r *MemoryBlogRepository) Count(_ context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.blogs), nil
}

func cloneUser(u model.User) model.User {
	u.BlogIDs = slices.Clone(u.BlogIDs)
	if u.BlogIDs == nil {
		u.BlogIDs = []string{}
	}
	return u
}

package model

import "time"

// User is the stored identity document. BlogIDs is a denormalized list of
// the blogs this user created; Blog.UserID is the authoritative owner field.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	BlogIDs      []string  `json:"-"`
	CreatedAt    time.Time `json:"-"`
}

type AuthClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// UserResponse is the external user shape. It never carries the password hash.
type UserResponse struct {
	ID       string        `json:"id"`
	Username string        `json:"username"`
	Name     string        `json:"name,omitempty"`
	Blogs    []BlogSummary `json:"blogs"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
}

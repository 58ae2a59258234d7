package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	UsernameMinLength = 3
	PasswordMinLength = 3
)

// Validate applies the user document schema.
func (u User) Validate() error {
	username := strings.TrimSpace(u.Username)
	if username == "" {
		return requiredError("User", "username")
	}
	if utf8.RuneCountInString(username) < UsernameMinLength {
		return &ValidationError{
			Document: "User",
			Path:     "username",
			Message: fmt.Sprintf("Path `username` (`%s`) is shorter than the minimum allowed length (%d).",
				username, UsernameMinLength),
		}
	}
	if u.PasswordHash == "" {
		return requiredError("User", "passwordHash")
	}

	return nil
}

// Validate applies the blog document schema.
func (b Blog) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return requiredError("Blog", "title")
	}
	if strings.TrimSpace(b.Author) == "" {
		return requiredError("Blog", "author")
	}
	if strings.TrimSpace(b.URL) == "" {
		return requiredError("Blog", "url")
	}
	if err := ValidateLikes(b.Likes); err != nil {
		return err
	}
	if b.UserID == "" {
		return requiredError("Blog", "user")
	}

	return nil
}

func ValidateLikes(likes int) error {
	if likes < 0 {
		return &ValidationError{
			Document: "Blog",
			Path:     "likes",
			Message:  fmt.Sprintf("Path `likes` (%d) is less than minimum allowed value (0).", likes),
		}
	}

	return nil
}

func requiredError(document string, path string) *ValidationError {
	return &ValidationError{
		Document: document,
		Path:     path,
		Message:  fmt.Sprintf("Path `%s` is required.", path),
	}
}

package service

import (
	"context"
	"errors"
	"strings"

	"go-bloglist-api/internal/model"
	"go-bloglist-api/pkg/apierror"
)

const msgInvalidLogin = "invalid username or password"

type LoginService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewLoginService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *LoginService {
	return &LoginService{users: users, hasher: hasher, tokens: tokens}
}

func (s *LoginService) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.LoginResponse{}, apierror.Unauthorized(msgInvalidLogin)
		}
		return model.LoginResponse{}, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return model.LoginResponse{}, apierror.Unauthorized(msgInvalidLogin)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return model.LoginResponse{}, err
	}

	return model.LoginResponse{Token: token, Username: user.Username, Name: user.Name}, nil
}

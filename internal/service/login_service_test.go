package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-bloglist-api/internal/model"
)

func TestLoginService(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	user, _ := f.signup(t, "root")

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := f.login.Login(ctx, model.LoginRequest{Username: "root", Password: "sekret"})
		require.NoError(t, err)
		assert.Equal(t, "root", resp.Username)
		assert.Equal(t, "Name of root", resp.Name)

		claims, err := f.tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.login.Login(ctx, model.LoginRequest{Username: "root", Password: "wrong"})
		requireAPIError(t, err, http.StatusUnauthorized, "invalid username or password")
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.login.Login(ctx, model.LoginRequest{Username: "nobody", Password: "sekret"})
		requireAPIError(t, err, http.StatusUnauthorized, "invalid username or password")
	})
}

package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go-bloglist-api/internal/config"
)

func newTestServer(t *testing.T, cfg *config.Config) *httptest.Server {
	t.Helper()

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(application.close)

	server := httptest.NewServer(application.server.Handler)
	t.Cleanup(server.Close)
	return server
}

func baseConfig() *config.Config {
	return &config.Config{
		ServerPort:        "0",
		StoreDriver:       config.StoreDriverMemory,
		JWTSecret:         "app-test-secret",
		JWTTTL:            time.Hour,
		BcryptCost:        4,
		LikesUpdatePolicy: config.LikesPolicyPublic,
		CORSOrigins:       []string{"*"},
		RateLimitRPM:      1000,
		AuthRateLimitRPM:  1000,
		RequestTimeout:    5 * time.Second,
	}
}

func mustNewRequest(t *testing.T, method string, url string, body any, token string) *http.Request {
	t.Helper()

	payload := []byte{}
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func doJSON(t *testing.T, req *http.Request, dst any) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	if dst != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp
}

// signupAndLogin registers username and returns a bearer token for it.
func signupAndLogin(t *testing.T, baseURL string, username string) string {
	t.Helper()

	credentials := map[string]string{"username": username, "name": username, "password": "sekret"}
	resp := doJSON(t, mustNewRequest(t, http.MethodPost, baseURL+"/api/users", credentials, ""), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var login struct {
		Token string `json:"token"`
	}
	resp = doJSON(t, mustNewRequest(t, http.MethodPost, baseURL+"/api/login", credentials, ""), &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)
	return login.Token
}

// exerciseBlogLifecycle runs the create, like, forbidden delete and delete
// sequence against a running server.
func exerciseBlogLifecycle(t *testing.T, baseURL string) {
	t.Helper()

	ownerToken := signupAndLogin(t, baseURL, "owner")
	otherToken := signupAndLogin(t, baseURL, "intruder")

	var created map[string]any
	resp := doJSON(t, mustNewRequest(t, http.MethodPost, baseURL+"/api/blogs", map[string]any{
		"title":  "Lifecycle",
		"author": "Tester",
		"url":    "https://example.com/lifecycle",
	}, ownerToken), &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, ok := created["id"].(string)
	require.True(t, ok)

	var liked map[string]any
	resp = doJSON(t, mustNewRequest(t, http.MethodPut, baseURL+"/api/blogs/"+id, map[string]int{"likes": 3}, ""), &liked)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(3), liked["likes"])

	var forbidden map[string]string
	resp = doJSON(t, mustNewRequest(t, http.MethodDelete, baseURL+"/api/blogs/"+id, nil, otherToken), &forbidden)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "unauthorized: cannot delete others' blogs", forbidden["error"])

	resp = doJSON(t, mustNewRequest(t, http.MethodDelete, baseURL+"/api/blogs/"+id, nil, ownerToken), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	var malformed map[string]string
	resp = doJSON(t, mustNewRequest(t, http.MethodDelete, baseURL+"/api/blogs/nope", nil, ownerToken), &malformed)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "malformatted id", malformed["error"])
}

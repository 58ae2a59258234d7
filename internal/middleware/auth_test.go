package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenExtractor(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		found  bool
	}{
		{name: "no header", header: "", found: false},
		{name: "bearer", header: "Bearer abc.def.ghi", token: "abc.def.ghi", found: true},
		{name: "lowercase scheme", header: "bearer abc", token: "abc", found: true},
		{name: "extra whitespace", header: "  Bearer   abc  ", token: "abc", found: true},
		{name: "scheme only", header: "Bearer ", found: false},
		{name: "basic scheme", header: "Basic dXNlcjpwdw==", found: false},
		{name: "no scheme", header: "abc.def.ghi", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				gotToken string
				gotFound bool
			)
			handler := TokenExtractor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotToken, gotFound = TokenFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code, "extractor must never reject")
			assert.Equal(t, tt.found, gotFound)
			assert.Equal(t, tt.token, gotToken)
		})
	}
}

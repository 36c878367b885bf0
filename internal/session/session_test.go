package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidate(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	token, err := iss.Issue("sess_1")
	require.NoError(t, err)

	id, err := iss.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "sess_1", id)
}

func TestValidateRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, err := iss.Issue("sess_1")
	require.NoError(t, err)

	t.Run("other secret", func(t *testing.T) {
		_, err := NewIssuer("other", time.Hour).Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := iss.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewIssuer("secret", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no subject", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		signed, err := raw.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = iss.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "sess_1"})
		signed, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = iss.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewIssuer("s", 0).ttl)
}

func TestRequire(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	token, err := iss.Issue("sess_1")
	require.NoError(t, err)

	r := mux.NewRouter()
	r.Handle("/sessions/{id}/state", iss.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(IDFromContext(r.Context())))
	})))

	tests := []struct {
		name   string
		target string
		header string
		status int
	}{
		{"bearer", "/sessions/sess_1/state", "Bearer " + token, http.StatusOK},
		{"query", "/sessions/sess_1/state?token=" + token, "", http.StatusOK},
		{"missing", "/sessions/sess_1/state", "", http.StatusUnauthorized},
		{"wrong scheme", "/sessions/sess_1/state", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "/sessions/sess_1/state", "Bearer nope", http.StatusUnauthorized},
		{"other session", "/sessions/sess_2/state", "Bearer " + token, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "sess_1", rec.Body.String())
			}
		})
	}
}

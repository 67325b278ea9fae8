package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/budget-service/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func mustToken(t *testing.T, secret string, householdID int64, ttl time.Duration) string {
	t.Helper()
	claims := Claims{
		HouseholdID: householdID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protected(t *testing.T) (http.Handler, *int64) {
	t.Helper()
	var seen int64
	h := AuthMiddleware(&config.Config{JWTSecret: testSecret})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := HouseholdIDFromContext(r.Context())
		require.True(t, ok)
		seen = id
		assert.Equal(t, "user-1", SubjectFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))
	return h, &seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	h, seen := protected(t)

	req := httptest.NewRequest(http.MethodGet, "/reports/forecast", nil)
	req.Header.Set("Authorization", "Bearer "+mustToken(t, testSecret, 7, time.Hour))
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, int64(7), *seen)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no token", ""},
		{"not bearer", "Basic abc"},
		{"wrong secret", "Bearer " + mustToken(t, "other", 7, time.Hour)},
		{"expired", "Bearer " + mustToken(t, testSecret, 7, -time.Minute)},
		{"no household", "Bearer " + mustToken(t, testSecret, 0, time.Hour)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := protected(t)
			req := httptest.NewRequest(http.MethodGet, "/reports/forecast", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, req)

			assert.Equal(t, http.StatusUnauthorized, resp.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, resp.Body.String())
		})
	}
}

func TestParseJWT_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{HouseholdID: 7}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseJWT(signed, []byte(testSecret))
	assert.Error(t, err)
}

func TestHouseholdIDFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := HouseholdIDFromContext(req.Context())
	assert.False(t, ok)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := mux.NewRouter()
	r.Use(Logging(logger))
	r.HandleFunc("/funds/{id}/toggle-skip", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/funds/3/toggle-skip", nil))

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, buf.String(), `"status":404`)
	assert.Contains(t, buf.String(), `"path":"/funds/3/toggle-skip"`)
}

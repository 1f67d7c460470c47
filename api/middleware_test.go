package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/linesmerrill/police-records-api/models"
)

func testUser() models.User {
	return models.User{ID: primitive.NewObjectID(), Email: "jane@example.com", Role: "officer"}
}

func TestTokens_IssueAndParse(t *testing.T) {
	tokens := NewTokens("secret")
	user := testUser()

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "officer", claims.Role)
	assert.Equal(t, TokenTTL, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestTokens_IssueWithoutSecret(t *testing.T) {
	_, err := NewTokens("").Issue(testUser())
	assert.Error(t, err)
}

func TestTokens_ParseRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret").Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokens("other").Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokens_ParseRejectsExpired(t *testing.T) {
	issuer := NewTokens("secret")
	issuer.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	signed, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = NewTokens("secret").Parse(signed)
	assert.EqualError(t, err, "token has expired")
}

func TestTokens_Middleware(t *testing.T) {
	tokens := NewTokens("secret")
	var seen *Claims
	protected := tokens.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing header", func(t *testing.T) {
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/collections", nil))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		var body models.ErrorResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "unauthorized", body.Error)
		assert.Equal(t, "missing bearer token", body.Details)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/collections", nil)
		req.Header.Set("Authorization", "Bearer abc123")
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		signed, err := tokens.Issue(testUser())
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/api/collections", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rr := httptest.NewRecorder()
		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "jane@example.com", seen.Email)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rr.Header().Get(RequestIDHeader))
}

func TestTimeoutMiddleware(t *testing.T) {
	var deadline time.Time
	var ok bool
	h := TimeoutMiddleware(time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		deadline, ok = r.Context().Deadline()
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestMetricsMiddleware(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware)
	r.HandleFunc("/api/records/{collection}/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := httpRequests.WithLabelValues(http.MethodGet, "/api/records/{collection}/{id}", "404")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/records/people/PER-001", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/records/vehicles/VEH-002", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestObserveRegistration(t *testing.T) {
	counter := arrestRegistrations.WithLabelValues(OutcomeNotFound)
	before := testutil.ToFloat64(counter)

	ObserveRegistration(OutcomeNotFound, 20*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, models.SuccessResponse{Success: true, Message: "ok"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok"}`, rr.Body.String())

	rr = httptest.NewRecorder()
	WriteJSON(rr, http.StatusOK, map[string]interface{}{"bad": make(chan int)})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

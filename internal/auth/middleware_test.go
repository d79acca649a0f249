package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newRouter(opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", RequireBearer(opts), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func do(r http.Handler, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseOf(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["response"]
}

func TestRequireBearer_StaticToken(t *testing.T) {
	r := newRouter(Options{Token: "meu_token_secreto_123"})

	assert.Equal(t, http.StatusOK, do(r, "Bearer meu_token_secreto_123").Code)
	assert.Equal(t, http.StatusOK, do(r, "bearer meu_token_secreto_123").Code)

	w := do(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", responseOf(t, w))

	assert.Equal(t, http.StatusUnauthorized, do(r, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer ").Code)

	w = do(r, "Bearer wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", responseOf(t, w))
}

func TestRequireBearer_NotConfigured(t *testing.T) {
	r := newRouter(Options{})

	w := do(r, "Bearer anything")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Bearer token not configured", responseOf(t, w))

	// missing header still answers 401 first
	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
}

func TestRequireBearer_HashedToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	r := newRouter(Options{TokenHash: string(hash)})

	assert.Equal(t, http.StatusOK, do(r, "Bearer s3cret").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer other").Code)
}

func TestRequireBearer_JWT(t *testing.T) {
	issuer, err := NewJWTIssuer("jwt-secret", "gosat-api", "gosat-clients", time.Minute)
	require.NoError(t, err)
	token, exp, err := issuer.Issue("frontend")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	r := newRouter(Options{Token: "static", JWTSecret: "jwt-secret", JWTIssuer: "gosat-api", JWTAudience: "gosat-clients"})

	w := do(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"frontend"`)

	assert.Equal(t, http.StatusOK, do(r, "Bearer static").Code)

	other, _ := NewJWTIssuer("other-secret", "gosat-api", "gosat-clients", time.Minute)
	forged, _, _ := other.Issue("frontend")
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer "+forged).Code)

	wrongAud, _ := NewJWTIssuer("jwt-secret", "gosat-api", "someone-else", time.Minute)
	tok, _, _ := wrongAud.Issue("frontend")
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer "+tok).Code)
}

func TestNewJWTIssuer_RequiresSecret(t *testing.T) {
	_, err := NewJWTIssuer("", "", "", 0)
	assert.Error(t, err)
}

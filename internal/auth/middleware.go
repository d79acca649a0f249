package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AgentTarik/gosat-api/internal/envelope"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Options configures RequireBearer. Any configured verifier may accept a token.
type Options struct {
	// Token is compared in constant time.
	Token string
	// TokenHash is a bcrypt hash of the accepted token.
	TokenHash string
	// JWTSecret enables HS256 JWT tokens.
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

func (o Options) configured() bool {
	return o.Token != "" || o.TokenHash != "" || o.JWTSecret != ""
}

// RequireBearer verifies the Authorization Bearer token.
// It returns 401 on a missing or rejected token and 500 when nothing is configured to verify it.
// For JWTs the subject is injected as "subject" into the context.
func RequireBearer(opts Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1) Extract Bearer token
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}

		if !opts.configured() {
			abort(c, http.StatusInternalServerError, "Bearer token not configured")
			return
		}

		// 2) Static token, then hashed token, then JWT
		switch {
		case opts.Token != "" && subtle.ConstantTimeCompare([]byte(raw), []byte(opts.Token)) == 1:
		case opts.TokenHash != "" && bcrypt.CompareHashAndPassword([]byte(opts.TokenHash), []byte(raw)) == nil:
		case opts.JWTSecret != "":
			claims, err := parseJWT(raw, opts)
			if err != nil {
				abort(c, http.StatusUnauthorized, "Invalid token")
				return
			}
			c.Set("subject", claims.Subject)
		default:
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(header[len("Bearer "):])
	if raw == "" || strings.ContainsAny(raw, " \t") {
		return "", false
	}
	return raw, true
}

func parseJWT(raw string, opts Options) (*jwt.RegisteredClaims, error) {
	parserOpts := []jwt.ParserOption{jwt.WithLeeway(30 * time.Second)}
	if opts.JWTIssuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.JWTIssuer))
	}
	if opts.JWTAudience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.JWTAudience))
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (any, error) {
			// Enforce HS256
			if t.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(opts.JWTSecret), nil
		},
		parserOpts...,
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, envelope.Build(msg, status))
}

package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/moodify/core/internal/models"
	"github.com/moodify/core/internal/pkg/jwt"
	"github.com/moodify/core/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const ContextKeySession = "session"

type sessionCtxKey struct{}

// Session is the authenticated caller, derived from the bearer token.
type Session struct {
	UserID   primitive.ObjectID
	Username string
}

// Auth returns a middleware that enforces JWT authentication.
func Auth(issuer *jwt.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := issuer.Parse(extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		uid, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			response.Unauthorized(c)
			return
		}
		sess := &Session{UserID: uid, Username: claims.Username}
		c.Set(ContextKeySession, sess)
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), sess))
		c.Next()
	}
}

// WithSession stores the session on a context for code below the HTTP layer.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionCtxKey{}).(*Session)
	return sess, ok && sess != nil
}

// CurrentSession extracts the authenticated session from the gin context.
func CurrentSession(c *gin.Context) *Session {
	v, _ := c.Get(ContextKeySession)
	sess, _ := v.(*Session)
	return sess
}

// ResolveUserID returns the session user. A userId claimed by the client in the body
// or query is optional but must match the session, otherwise models.ErrForbidden.
func ResolveUserID(c *gin.Context, claimed string) (primitive.ObjectID, error) {
	sess := CurrentSession(c)
	if sess == nil {
		return primitive.NilObjectID, models.ErrUnauthenticated
	}
	claimed = strings.TrimSpace(claimed)
	if claimed != "" && claimed != sess.UserID.Hex() {
		return primitive.NilObjectID, models.ErrForbidden
	}
	return sess.UserID, nil
}

func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}

package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/ray-remotestate/enfes/config"
	"github.com/ray-remotestate/enfes/models"
	"github.com/sirupsen/logrus"
)

const SessionCookie = "session"

type Claims struct {
	UserID uuid.UUID
	Roles  []string
	jwt.RegisteredClaims
}

// Session is the caller identity resolved from a request.
type Session struct {
	UserID uuid.UUID
	Roles  []string
}

func (s *Session) IsCook() bool {
	return s != nil && models.HasRole(s.Roles, models.RoleCook)
}

type ContextKey string

const (
	sessionContextKey ContextKey = "session"
)

// SessionMiddleware resolves the optional session from the session cookie or a bearer token.
// Requests without a valid token continue anonymously.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractToken(r)
		if tokenStr == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := ParseToken(tokenStr)
		if err != nil {
			logrus.WithError(err).Debug("ignoring invalid session token")
			next.ServeHTTP(w, r)
			return
		}

		session := &Session{UserID: claims.UserID, Roles: claims.Roles}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return config.SecretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == uuid.Nil {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// GetSession returns the session stored by SessionMiddleware, or nil for anonymous requests.
func GetSession(r *http.Request) *Session {
	session, _ := r.Context().Value(sessionContextKey).(*Session)
	return session
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// RequireSession rejects anonymous requests with 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetSession(r) == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RoleBasedMiddleware(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := GetSession(r)
			if session == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			for _, role := range allowedRoles {
				if models.HasRole(session.Roles, role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, "forbidden: insufficient role", http.StatusForbidden)
		})
	}
}

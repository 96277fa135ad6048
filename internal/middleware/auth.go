package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/quickshare/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// RoomIDKey is the context key for the authenticated room identifier.
const RoomIDKey contextKey = "roomID"

// RoomID extracts the authenticated room identifier from the request context.
// The second return is false when the request carries no room scope.
func RoomID(ctx context.Context) (string, bool) {
	roomID, ok := ctx.Value(RoomIDKey).(string)
	return roomID, ok && roomID != ""
}

// RequireRoom returns middleware that validates a Bearer JWT and injects
// the room identifier it encodes into the request context.
func RequireRoom(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				response.Unauthorized(w, "invalid token claims")
				return
			}

			roomID, _ := claims["roomId"].(string)
			if roomID == "" {
				response.Unauthorized(w, "token carries no room")
				return
			}

			ctx := context.WithValue(r.Context(), RoomIDKey, roomID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

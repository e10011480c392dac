package middleware

import (
	"context"
	"net/http"

	"github.com/golang-jwt/jwt/v5"

	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/web"
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// UserResolver checks that a token's embedded identity still holds that
// exact token (per-session revocation).
type UserResolver interface {
	FindByToken(userID, token string) (*models.User, error)
}

// Auth is the guard for owner-only routes. It reads the session token from
// the auth cookie, verifies the signature, and resolves the user. On any
// failure it clears the cookie, flashes a message, and redirects home; there
// is no JSON error path here.
func Auth(resolver UserResolver, jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(web.AuthCookie)
			if err != nil || c.Value == "" {
				reject(w, r)
				return
			}
			tokenString := c.Value

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				reject(w, r)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				reject(w, r)
				return
			}
			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				reject(w, r)
				return
			}

			user, err := resolver.FindByToken(userID, tokenString)
			if err != nil {
				reject(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request) {
	web.ClearAuthCookie(w)
	web.FlashError(w, "You need to be loggedIn to do that!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GetUser returns the authenticated user, or nil outside the guard.
func GetUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// GetToken returns the raw session token used for the current request.
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

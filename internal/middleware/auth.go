package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/fastopp/fastopp/internal/ctxkeys"
	"github.com/fastopp/fastopp/internal/service"
)

// AuthMiddleware checks for a session token cookie and adds the user to
// the request context if valid. Requests without a valid session pass
// through unauthenticated.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("session_token")
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(cookie.Value)
			if err != nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(userID)
			if err != nil || !user.IsActive {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Security: keep the password hash out of the context
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth ensures the request carries a valid session.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			denyJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next(w, r)
	}
}

// RequireStaff ensures the session user may manage webinar data.
func RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			denyJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.CanManageWebinars() {
			denyJSON(w, http.StatusForbidden, "staff access required")
			return
		}
		next(w, r)
	}
}

// RequireSuperuser guards user management endpoints.
func RequireSuperuser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := ctxkeys.User(r.Context())
		if user == nil {
			denyJSON(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsSuperuser {
			denyJSON(w, http.StatusForbidden, "superuser access required")
			return
		}
		next(w, r)
	}
}

func denyJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": message})
}

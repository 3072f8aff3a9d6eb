package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/sessions"
)

type TokenParser interface {
	Parse(token string) (string, error)
}

// Authenticate resolves the caller from a bearer token or, failing that, the
// session cookie, and stores the user in the request context. The user is
// loaded from the database on every request so role changes apply at once.
// Requests without credentials pass through anonymous; a bad bearer token is
// rejected with 401.
func Authenticate(tokens TokenParser, sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl, rnd *renderer.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := ""
			fromBearer := false

			if header := r.Header.Get("Authorization"); header != "" {
				token, ok := bearerToken(header)
				if !ok {
					rnd.Error(w, apperror.Unauthorized("Invalid token"))
					return
				}
				parsed, err := tokens.Parse(token)
				if err != nil {
					log.Printf("Authenticate: rejected bearer token on %s: %v", r.URL.Path, err)
					rnd.Error(w, apperror.Unauthorized("Invalid token"))
					return
				}
				userID = parsed
				fromBearer = true
			} else if sessionStore != nil {
				userID = sessionStore.GetUserID(r)
			}

			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				rnd.Error(w, err)
				return
			}
			if user == nil {
				if fromBearer {
					rnd.Error(w, apperror.Unauthorized("Invalid token"))
					return
				}
				log.Printf("Authenticate: session refers to unknown user %s", userID)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(helpers.WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireUser lets only authenticated requests through. Anonymous callers
// get an error of anonymousKind, which lets a route answer 401 or 403.
func RequireUser(rnd *renderer.Renderer, anonymousKind apperror.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if helpers.UserFromContext(r.Context()) == nil {
				message := "Authentication required"
				if anonymousKind == apperror.KindForbidden {
					message = "Access denied"
				}
				rnd.Error(w, apperror.New(anonymousKind, message))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole lets through only users holding role. Anonymous callers are
// treated like users without it.
func RequireRole(rnd *renderer.Renderer, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := helpers.UserFromContext(r.Context())
			if !user.HasRole(role) {
				if user != nil {
					log.Printf("RequireRole: user %s (%s) attempted %s %s without role %s", user.ID, user.Email, r.Method, r.URL.Path, role)
				}
				rnd.Error(w, apperror.Forbidden("Access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

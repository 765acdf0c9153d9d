package middlewares

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/rahmatd/go-storefront/app/utils/sessions"
)

// CurrentUser resolves the session's user id to a user record and attaches
// both to the request context. Anonymous requests pass through untouched.
func CurrentUser(sessionStore sessions.Store, userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("CurrentUser: error finding user %s: %v", userID, err)
				next.ServeHTTP(w, r)
				return
			}
			if user == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), helpers.ContextKeyUserID, user.ID)
			ctx = context.WithValue(ctx, helpers.ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous requests to the login page.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if helpers.UserIDFromContext(r) == "" {
			http.Redirect(w, r, "/login?status=error&message="+url.QueryEscape("You must be logged in to access this page."), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

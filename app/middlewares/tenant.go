package middlewares

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/rahmatd/go-storefront/app/models"
	"github.com/rahmatd/go-storefront/app/repositories"
)

type contextKey string

const (
	StoreKey          contextKey = "store"
	IsCustomDomainKey contextKey = "is_custom_domain"
)

// blockedOnCustomDomain lists the management path prefixes that must never be
// reachable through a store's registered domain. Exact prefix match.
var blockedOnCustomDomain = []string{
	"/admin/",
	"/dashboard/",
	"/my-stores/",
	"/create-store/",
}

const customDomainDeniedBody = "<h1>Access Denied</h1>" +
	"<p>Admin access is not available on this domain.</p>" +
	"<p>Please use the main platform to access your dashboard.</p>"

// TenantResolver determines which store, if any, an inbound request belongs
// to. A registered custom domain wins over the /store/{slug} path pattern; a
// miss on both is not an error, the request simply carries no store. On a
// custom domain, management paths are short-circuited with a fixed 403 before
// any handler runs.
func TenantResolver(storeRepo repositories.StoreRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := r.Host
			if h, _, err := net.SplitHostPort(host); err == nil {
				host = h
			}

			var store *models.Store
			isCustomDomain := false

			resolved, err := storeRepo.FindActiveByDomain(r.Context(), host)
			if err != nil {
				log.Printf("TenantResolver: domain lookup failed for host %q: %v", host, err)
			}
			if resolved != nil {
				store = resolved
				isCustomDomain = true
			} else {
				parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
				if len(parts) >= 2 && parts[0] == "store" {
					resolved, err := storeRepo.FindActiveBySlug(r.Context(), parts[1])
					if err != nil {
						log.Printf("TenantResolver: slug lookup failed for %q: %v", parts[1], err)
					}
					store = resolved
				}
			}

			if isCustomDomain {
				for _, blocked := range blockedOnCustomDomain {
					if strings.HasPrefix(r.URL.Path, blocked) {
						w.Header().Set("Content-Type", "text/html; charset=utf-8")
						w.WriteHeader(http.StatusForbidden)
						_, _ = w.Write([]byte(customDomainDeniedBody))
						return
					}
				}
			}

			ctx := context.WithValue(r.Context(), IsCustomDomainKey, isCustomDomain)
			if store != nil {
				ctx = context.WithValue(ctx, StoreKey, store)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StoreFromContext returns the resolved tenant store, or nil for global pages.
func StoreFromContext(r *http.Request) *models.Store {
	store, _ := r.Context().Value(StoreKey).(*models.Store)
	return store
}

func IsCustomDomain(r *http.Request) bool {
	isCustom, _ := r.Context().Value(IsCustomDomainKey).(bool)
	return isCustom
}

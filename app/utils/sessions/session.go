package sessions

import (
	"encoding/gob"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	"github.com/rahmatd/go-storefront/app/models"
)

const (
	sessionCookieName = "storefront-session"

	userIDSessionKey = "userID"
	cartSessionKey   = "cart"
)

func init() {
	// Cart lines are stored directly in the cookie session values.
	gob.Register(models.Cart{})
}

// Store is the explicit session handle threaded through handlers and
// services; cart state never lives in package-level mutable state.
type Store interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	ClearUserID(w http.ResponseWriter, r *http.Request) error

	GetCart(r *http.Request) models.Cart
	SaveCart(w http.ResponseWriter, r *http.Request, cart models.Cart) error
	ClearCart(w http.ResponseWriter, r *http.Request) error

	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)

	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		// A decode failure yields a fresh session; log and carry on.
		log.Printf("sessions: error getting session: %v", err)
	}
	return session
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	session := c.getSession(r)
	if session == nil {
		return ""
	}
	userID, ok := session.Values[userIDSessionKey].(string)
	if !ok {
		return ""
	}
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session := c.getSession(r)
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	delete(session.Values, userIDSessionKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) GetCart(r *http.Request) models.Cart {
	session := c.getSession(r)
	if session == nil {
		return models.Cart{}
	}
	cart, ok := session.Values[cartSessionKey].(models.Cart)
	if !ok || cart == nil {
		return models.Cart{}
	}
	return cart
}

func (c *CookieSessionStore) SaveCart(w http.ResponseWriter, r *http.Request, cart models.Cart) error {
	session := c.getSession(r)
	session.Values[cartSessionKey] = cart
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearCart(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	delete(session.Values, cartSessionKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

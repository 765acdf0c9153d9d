package handlers

import (
	"log"
	"net/http"

	"github.com/rahmatd/go-storefront/app/helpers"
	"github.com/rahmatd/go-storefront/app/repositories"
	"github.com/rahmatd/go-storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	userRepo     repositories.UserRepository
	sessionStore sessions.Store
	render       *render.Render
}

func NewAuthHandler(userRepo repositories.UserRepository, sessionStore sessions.Store, render *render.Render) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		sessionStore: sessionStore,
		render:       render,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if helpers.UserIDFromContext(r) != "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title": "Login",
	})
	_ = h.render.HTML(w, http.StatusOK, "login", data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to read form data", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		helpers.RedirectWithMessage(w, r, "/login", "error", "Email and password are required.")
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("LoginPost: failed to look up user %s: %v", email, err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Login failed. Please try again.")
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		helpers.RedirectWithMessage(w, r, "/login", "error", "Invalid email or password.")
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("LoginPost: failed to save session for user %s: %v", user.ID, err)
		helpers.RedirectWithMessage(w, r, "/login", "error", "Login failed. Please try again.")
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearUserID(w, r); err != nil {
		log.Printf("Logout: failed to clear session: %v", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

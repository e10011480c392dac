package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blaze/backend/internal/middleware"
	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/services"
	"github.com/blaze/backend/internal/web"
)

// UserService is what the auth handler needs from the user repository.
type UserService interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	FindByCredentials(email, password string) (*models.User, error)
	GenerateAuthToken(user *models.User) (string, error)
	Logout(userID, token string) error
	LogoutAll(userID string) error
	ChangePassword(user *models.User, current, newPassword string) error
	Delete(userID string) error
}

// CarouselLister feeds the pages that show carousel records.
type CarouselLister interface {
	ListAll() ([]models.Carousel, error)
}

type AuthHandler struct {
	users     UserService
	carousels CarouselLister
	render    *web.Renderer
}

func NewAuthHandler(users UserService, carousels CarouselLister, render *web.Renderer) *AuthHandler {
	return &AuthHandler{users: users, carousels: carousels, render: render}
}

// Register is a JSON route: it creates the owner account and starts a
// session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errs))
		return
	}

	user, err := h.users.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailExists) {
			writeJSON(w, http.StatusConflict, models.NewErrorResponse("Email already registered"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create user"))
		return
	}

	token, err := h.users.GenerateAuthToken(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to generate token"))
		return
	}

	web.SetAuthCookie(w, token)
	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(user.Public()))
}

// Login is the browser form flow: cookie plus redirect.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	req := models.LoginRequest{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if errs := req.Validate(); len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := h.users.FindByCredentials(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			web.FlashError(w, err.Error())
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	token, err := h.users.GenerateAuthToken(user)
	if err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	web.SetAuthCookie(w, token)
	web.FlashSuccess(w, "Successfully loggedIn")
	http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
}

// LoginPage renders the form; an already-authenticated browser is bounced
// back to the panel.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(web.AuthCookie); err == nil && c.Value != "" {
		web.FlashError(w, "You need to logout to login back!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}
	h.render.Render(w, r, http.StatusOK, "login", nil, nil)
}

// Logout revokes exactly the session token used for this request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	token := middleware.GetToken(r.Context())

	if err := h.users.Logout(user.ID, token); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	web.ClearAuthCookie(w)
	web.FlashSuccess(w, "Successfully loggedOut.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutAll clears the whole token list.
func (h *AuthHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.users.LogoutAll(user.ID); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	web.ClearAuthCookie(w)
	web.FlashSuccess(w, "Successfully logged out from all devices.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Me is a JSON route returning the public projection only.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(user.Public()))
}

// ChangePassword handles PATCH /users/{id} with the closed update schema
// {password, newPassword, conNewPassword}.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if chi.URLParam(r, "id") != user.ID {
		web.FlashError(w, "Invalid updates!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}
	if !models.PasswordUpdates.Allows(formKeys(r.PostForm)) {
		web.FlashError(w, "Invalid updates!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	req := models.ChangePasswordRequest{
		Password:       r.PostFormValue("password"),
		NewPassword:    r.PostFormValue("newPassword"),
		ConNewPassword: r.PostFormValue("conNewPassword"),
	}
	if errs := req.Validate(); len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	if err := h.users.ChangePassword(user, req.Password, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			web.FlashError(w, err.Error())
		} else {
			web.FlashError(w, "Something went wrong!")
		}
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	web.FlashSuccess(w, "Successfully updated password!")
	http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
}

// DeleteMe removes the account and everything it owns.
func (h *AuthHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := h.users.Delete(user.ID); err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/adminPanel", http.StatusSeeOther)
		return
	}

	web.ClearAuthCookie(w)
	web.FlashSuccess(w, "Your account has been deleted.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// AdminPanel renders the owner's dashboard.
func (h *AuthHandler) AdminPanel(w http.ResponseWriter, r *http.Request) {
	carousels, err := h.carousels.ListAll()
	if err != nil {
		web.FlashError(w, "Something went wrong!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, http.StatusOK, "admin-panel", currentUserView(r), carousels)
}

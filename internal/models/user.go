package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type User struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Tokens       []string  `bson:"tokens"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// UserView is the outward-facing projection of a User. Credentials and the
// token list never leave the process.
type UserView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) Public() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// HoldsToken reports whether token is still in the user's live token list.
func (u *User) HoldsToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// NormalizeEmail applies the canonical form stored in the users collection.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	email := NormalizeEmail(r.Email)
	if email == "" {
		errors["email"] = "Email is required"
	} else if err := validate.Var(email, "email"); err != nil {
		errors["email"] = "Email is invalid!"
	}

	if msg := validatePassword(r.Password); msg != "" {
		errors["password"] = msg
	}

	return errors
}

func validatePassword(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(strings.TrimSpace(password)) < 8 {
		return "Password must be at least 8 characters"
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return `password cannot contain "password"`
	}
	return ""
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		errors["email"] = "Email is required"
	}
	if r.Password == "" {
		errors["password"] = "Password is required"
	}

	return errors
}

type ChangePasswordRequest struct {
	Password       string `json:"password"`
	NewPassword    string `json:"newPassword"`
	ConNewPassword string `json:"conNewPassword"`
}

func (r *ChangePasswordRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Password == "" {
		errors["password"] = "Current password is required"
	}
	if msg := validatePassword(r.NewPassword); msg != "" {
		errors["newPassword"] = msg
	} else if r.NewPassword != r.ConNewPassword {
		errors["conNewPassword"] = "Your new password does not match confirmation!"
	}

	return errors
}

package models

import (
	"strings"
)

// ContactRequest is an anonymous visitor's contact-form submission.
type ContactRequest struct {
	FullName      string `json:"fullName"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	ServiceType   string `json:"serviceType"`
	Message       string `json:"message"`
}

func (r *ContactRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if strings.TrimSpace(r.FullName) == "" {
		errors["fullName"] = "Name is required"
	} else if len(r.FullName) > 120 {
		errors["fullName"] = "Name is too long"
	}

	email := strings.TrimSpace(r.Email)
	if email == "" {
		errors["email"] = "Email is required"
	} else if len(email) > 254 {
		errors["email"] = "Email is too long"
	} else if err := validate.Var(email, "email"); err != nil {
		errors["email"] = "Email is invalid"
	}

	if strings.TrimSpace(r.Message) == "" {
		errors["message"] = "Message is required"
	} else if len(r.Message) > 4000 {
		errors["message"] = "Message is too long"
	}

	return errors
}

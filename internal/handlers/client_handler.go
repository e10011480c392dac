package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/blaze/backend/internal/models"
	"github.com/blaze/backend/internal/web"
)

// Mailer sends the two contact-flow messages.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, email, fullName string) error
	SendOperatorEmail(ctx context.Context, fullName, contactNumber, email, serviceType, message string) error
}

type ClientHandler struct {
	mailer Mailer
}

func NewClientHandler(mailer Mailer) *ClientHandler {
	return &ClientHandler{mailer: mailer}
}

// Submit handles the contact form: auto-reply to the submitter, then the
// forwarded notification to the operator.
func (h *ClientHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		web.FlashError(w, "Something went wrong, Please try again shortly!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	req := models.ContactRequest{
		FullName:      strings.TrimSpace(r.PostFormValue("fullName")),
		ContactNumber: strings.TrimSpace(r.PostFormValue("contactNumber")),
		Email:         strings.TrimSpace(r.PostFormValue("email")),
		ServiceType:   strings.TrimSpace(r.PostFormValue("serviceType")),
		Message:       strings.TrimSpace(r.PostFormValue("message")),
	}
	if errs := req.Validate(); len(errs) > 0 {
		web.FlashError(w, firstError(errs))
		http.Redirect(w, r, "/contact-us", http.StatusSeeOther)
		return
	}

	ticket := generateContactTicket()
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	if err := h.mailer.SendWelcomeEmail(ctx, req.Email, req.FullName); err != nil {
		log.Printf("[Contact] ticket=%s welcome mail err=%v", ticket, err)
		web.FlashError(w, "Something went wrong, Please try again shortly!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := h.mailer.SendOperatorEmail(ctx, req.FullName, req.ContactNumber, req.Email, req.ServiceType, req.Message); err != nil {
		log.Printf("[Contact] ticket=%s operator mail err=%v", ticket, err)
		web.FlashError(w, "Something went wrong, Please try again shortly!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	log.Printf("[Contact] ticket=%s delivered", ticket)
	web.FlashSuccess(w, "Thank you "+req.FullName+" for your email. we will catch you up shortly.")
	http.Redirect(w, r, "/contact-us", http.StatusSeeOther)
}

// generateContactTicket makes a short reference for the logs.
// Example: BZ-20260131-032508-A1B2C3D4
func generateContactTicket() string {
	now := time.Now().UTC().Format("20060102-150405")
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	if len(id) > 8 {
		id = id[:8]
	}
	return "BZ-" + now + "-" + id
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubMailer struct {
	welcomeErr  error
	operatorErr error

	welcomeTo    string
	operatorSent bool
	gotService   string
	gotMessage   string
}

func (m *stubMailer) SendWelcomeEmail(ctx context.Context, email, fullName string) error {
	if m.welcomeErr != nil {
		return m.welcomeErr
	}
	m.welcomeTo = email
	return nil
}

func (m *stubMailer) SendOperatorEmail(ctx context.Context, fullName, contactNumber, email, serviceType, message string) error {
	if m.operatorErr != nil {
		return m.operatorErr
	}
	m.operatorSent = true
	m.gotService = serviceType
	m.gotMessage = message
	return nil
}

func contactForm() url.Values {
	return url.Values{
		"fullName":      {"Jane Doe"},
		"contactNumber": {"555-0100"},
		"email":         {"jane@example.com"},
		"serviceType":   {"Event"},
		"message":       {"Need a quote"},
	}
}

func TestClientSubmit(t *testing.T) {
	mailer := &stubMailer{}
	h := NewClientHandler(mailer)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/clients", contactForm()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact-us", rec.Header().Get("Location"))
	assert.Equal(t, "Thank you Jane Doe for your email. we will catch you up shortly.",
		flashCookie(t, rec, "flash_success"))

	assert.Equal(t, "jane@example.com", mailer.welcomeTo)
	assert.True(t, mailer.operatorSent)
	assert.Equal(t, "Event", mailer.gotService)
	assert.Equal(t, "Need a quote", mailer.gotMessage)
}

func TestClientSubmitTrimsFields(t *testing.T) {
	mailer := &stubMailer{}
	h := NewClientHandler(mailer)

	form := contactForm()
	form.Set("email", "  jane@example.com  ")
	form.Set("message", "  Need a quote  ")

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/clients", form))

	assert.Equal(t, "jane@example.com", mailer.welcomeTo)
	assert.Equal(t, "Need a quote", mailer.gotMessage)
}

func TestClientSubmitValidation(t *testing.T) {
	mailer := &stubMailer{}
	h := NewClientHandler(mailer)

	form := contactForm()
	form.Set("email", "not-an-email")

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/clients", form))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/contact-us", rec.Header().Get("Location"))
	assert.NotEmpty(t, flashCookie(t, rec, "flash_error"))
	assert.Empty(t, mailer.welcomeTo)
	assert.False(t, mailer.operatorSent)
}

func TestClientSubmitWelcomeMailFailure(t *testing.T) {
	mailer := &stubMailer{welcomeErr: errors.New("sendgrid down")}
	h := NewClientHandler(mailer)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/clients", contactForm()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Something went wrong, Please try again shortly!",
		flashCookie(t, rec, "flash_error"))
	assert.False(t, mailer.operatorSent)
}

func TestClientSubmitOperatorMailFailure(t *testing.T) {
	mailer := &stubMailer{operatorErr: errors.New("sendgrid down")}
	h := NewClientHandler(mailer)

	rec := httptest.NewRecorder()
	h.Submit(rec, postForm("/clients", contactForm()))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, "Something went wrong, Please try again shortly!",
		flashCookie(t, rec, "flash_error"))
	// The auto-reply went out before the operator send failed.
	assert.Equal(t, "jane@example.com", mailer.welcomeTo)
}

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaze/backend/internal/models"
)

func TestNewRendererParsesAllPages(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	for _, page := range []string{
		"index", "items", "photo", "video", "achievements", "contact-us",
		"login", "admin-panel", "admin-editItem", "admin-editPhoto",
		"admin-editVideo", "admin-editCarousel",
	} {
		assert.Contains(t, rn.pages, page)
	}
	assert.NotContains(t, rn.pages, "layout")
}

func TestRenderWritesPage(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/login", nil)
	rec := httptest.NewRecorder()
	rn.Render(rec, req, http.StatusOK, "login", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "Login")
}

func TestRenderShowsFlashAndUser(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "flash_success", Value: "Successfully+loggedIn"})

	user := &models.UserView{ID: "u1", Email: "owner@example.com"}
	rec := httptest.NewRecorder()
	rn.Render(rec, req, http.StatusOK, "index", user, []models.Carousel{})

	body := rec.Body.String()
	assert.Contains(t, body, "Successfully loggedIn")
	assert.Contains(t, body, "/adminPanel")
}

func TestRenderUnknownPage(t *testing.T) {
	rn, err := NewRenderer()
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	rn.Render(rec, req, http.StatusOK, "no-such-page", nil, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

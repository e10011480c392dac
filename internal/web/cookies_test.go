package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthCookieRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetAuthCookie(rec, "tok-123")

	c := findCookie(rec.Result().Cookies(), AuthCookie)
	require.NotNil(t, c)
	assert.Equal(t, "tok-123", c.Value)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "/", c.Path)

	rec = httptest.NewRecorder()
	ClearAuthCookie(rec)

	c = findCookie(rec.Result().Cookies(), AuthCookie)
	require.NotNil(t, c)
	assert.Empty(t, c.Value)
	assert.Negative(t, c.MaxAge)
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	FlashSuccess(rec, "Successfully added item.")
	FlashError(rec, "Item not found!")

	// Carry the flash cookies over to the next request, the way a browser
	// follows the redirect.
	req := httptest.NewRequest("GET", "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	rec2 := httptest.NewRecorder()
	flash := PopFlash(rec2, req)
	assert.Equal(t, "Successfully added item.", flash.Success)
	assert.Equal(t, "Item not found!", flash.Error)

	// Popping expires both cookies.
	for _, name := range []string{"flash_success", "flash_error"} {
		c := findCookie(rec2.Result().Cookies(), name)
		require.NotNil(t, c, name)
		assert.Negative(t, c.MaxAge, name)
	}
}

func TestPopFlashEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	flash := PopFlash(rec, req)
	assert.Empty(t, flash.Success)
	assert.Empty(t, flash.Error)
	assert.Empty(t, rec.Result().Cookies())
}

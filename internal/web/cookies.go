package web

import (
	"net/http"
	"net/url"
)

// AuthCookie carries the session token.
const AuthCookie = "auth_token"

const (
	flashSuccessCookie = "flash_success"
	flashErrorCookie   = "flash_error"
)

func SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}

func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// Flash is the pair of one-request status messages surfaced after a
// redirect.
type Flash struct {
	Success string
	Error   string
}

func FlashSuccess(w http.ResponseWriter, msg string) {
	setFlashCookie(w, flashSuccessCookie, msg)
}

func FlashError(w http.ResponseWriter, msg string) {
	setFlashCookie(w, flashErrorCookie, msg)
}

// PopFlash reads and expires both flash cookies.
func PopFlash(w http.ResponseWriter, r *http.Request) Flash {
	return Flash{
		Success: popFlashCookie(w, r, flashSuccessCookie),
		Error:   popFlashCookie(w, r, flashErrorCookie),
	}
}

func setFlashCookie(w http.ResponseWriter, name, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
	})
}

func popFlashCookie(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return msg
}

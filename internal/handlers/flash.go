package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Flash is a one-shot message carried across a redirect
type Flash struct {
	Level   string // "primary", "success", "warning", "danger"
	Message string
}

// SetFlash stores a flash message in a short-lived cookie. The next page
// render pops and clears it.
func SetFlash(w http.ResponseWriter, level, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(level + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the flash cookie, returning nil if none is set
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(FlashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	level, message, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil
	}
	return &Flash{Level: level, Message: message}
}

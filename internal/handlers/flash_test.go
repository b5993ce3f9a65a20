package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFlashRoundTrip(t *testing.T) {
	setRec := httptest.NewRecorder()
	SetFlash(setRec, "success", "Post deleted.")

	var flashCookie *http.Cookie
	for _, cookie := range setRec.Result().Cookies() {
		if cookie.Name == FlashCookieName {
			flashCookie = cookie
		}
	}
	if flashCookie == nil {
		t.Fatal("SetFlash did not set the flash cookie")
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(flashCookie)
	popRec := httptest.NewRecorder()

	flash := PopFlash(popRec, req)
	if flash == nil {
		t.Fatal("PopFlash() = nil, want a flash")
	}
	if flash.Level != "success" || flash.Message != "Post deleted." {
		t.Errorf("PopFlash() = %+v, want level success message %q", flash, "Post deleted.")
	}

	// Popping must clear the cookie so the message shows once
	cleared := false
	for _, cookie := range popRec.Result().Cookies() {
		if cookie.Name == FlashCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("PopFlash did not clear the flash cookie")
	}
}

func TestFlashMessageMayContainSeparator(t *testing.T) {
	setRec := httptest.NewRecorder()
	SetFlash(setRec, "warning", "a|b|c")

	req := httptest.NewRequest("GET", "/", nil)
	for _, cookie := range setRec.Result().Cookies() {
		if cookie.Name == FlashCookieName {
			req.AddCookie(cookie)
		}
	}

	flash := PopFlash(httptest.NewRecorder(), req)
	if flash == nil {
		t.Fatal("PopFlash() = nil, want a flash")
	}
	if flash.Message != "a|b|c" {
		t.Errorf("Message = %q, want %q", flash.Message, "a|b|c")
	}
}

func TestPopFlashWithoutCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if flash := PopFlash(httptest.NewRecorder(), req); flash != nil {
		t.Errorf("PopFlash() = %+v, want nil", flash)
	}
}

func TestPopFlashGarbageCookie(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashCookieName, Value: "not-base64!"})
	if flash := PopFlash(httptest.NewRecorder(), req); flash != nil {
		t.Errorf("PopFlash() = %+v, want nil", flash)
	}
}

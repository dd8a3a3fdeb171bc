package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

// Flash is a one-time notification carried across a redirect.
type Flash struct {
	Type    string `json:"type"` // "notice", "alert"
	Message string `json:"message"`
}

const flashCookie = "actionkit_flash"

// SetFlash stores a flash message in a short-lived cookie.
func SetFlash(w http.ResponseWriter, kind, message string) {
	data, _ := json.Marshal(Flash{Type: kind, Message: message})
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TakeFlash reads and clears the flash cookie. Returns nil when no flash
// is pending.
func TakeFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}

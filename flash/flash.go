// Package flash carries one-shot status messages across a redirect in a signed cookie.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const cookieName = "flash"

// Message kinds, used as CSS classes by the layout.
const (
	KindSuccess = "success"
	KindError   = "error"
)

type Message struct {
	Kind string `json:"k"`
	Text string `json:"t"`
}

// Store signs and verifies flash cookies with a server secret.
type Store struct {
	secret []byte
	secure bool
}

// New returns a store signing with secret. A blank secret falls back to a dev value.
func New(secret string, secure bool) *Store {
	if secret == "" {
		secret = "devflashsecret"
	}
	return &Store{secret: []byte(secret), secure: secure}
}

func (s *Store) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Set stores a message for the next request.
func (s *Store) Set(w http.ResponseWriter, kind, text string) {
	raw, err := json.Marshal(Message{Kind: kind, Text: text})
	if err != nil {
		return
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    payload + "." + s.sign(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   60,
	})
}

func (s *Store) Success(w http.ResponseWriter, text string) { s.Set(w, KindSuccess, text) }

func (s *Store) Error(w http.ResponseWriter, text string) { s.Set(w, KindError, text) }

// Pop returns the pending message, if any, and clears the cookie.
// Tampered cookies are discarded.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) (Message, bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return Message{}, false
	}
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})

	payload, sig, ok := strings.Cut(c.Value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return Message{}, false
	}
	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Message{}, false
	}
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, false
	}
	return m, true
}

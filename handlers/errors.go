package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"paylane-payment-api/models"
	"paylane-payment-api/utils"
)

const (
	errorSessionName = "paylane-checkout"
	errorSessionKey  = "errors"
)

// ErrorStore accumulates rejection messages in the shopper's cookie
// session so the checkout page can display them after the redirect
// back. Messages are drained on read.
type ErrorStore struct {
	store *sessions.CookieStore
}

func NewErrorStore(secret string) *ErrorStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
	}
	return &ErrorStore{store: store}
}

// Push appends messages to the session. Stored as a JSON string so the
// cookie codec stays free of gob type registration.
func (s *ErrorStore) Push(w http.ResponseWriter, r *http.Request, messages []string) error {
	session, err := s.store.Get(r, errorSessionName)
	if err != nil {
		// A stale or tampered cookie just means a fresh session.
		session, _ = s.store.New(r, errorSessionName)
	}

	existing := decodeMessages(session)
	existing = append(existing, messages...)

	encoded, err := json.Marshal(existing)
	if err != nil {
		return err
	}

	session.Values[errorSessionKey] = string(encoded)
	return session.Save(r, w)
}

// Drain returns and clears the accumulated messages.
func (s *ErrorStore) Drain(w http.ResponseWriter, r *http.Request) []string {
	session, err := s.store.Get(r, errorSessionName)
	if err != nil {
		return nil
	}

	messages := decodeMessages(session)
	if len(messages) == 0 {
		return nil
	}

	delete(session.Values, errorSessionKey)
	if err := session.Save(r, w); err != nil {
		log.Printf("Warning: failed to clear checkout error session: %v", err)
	}

	return messages
}

func decodeMessages(session *sessions.Session) []string {
	raw, ok := session.Values[errorSessionKey].(string)
	if !ok || raw == "" {
		return nil
	}

	var messages []string
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil
	}
	return messages
}

// GetCheckoutErrors serves the checkout page's error placeholder: it
// drains whatever the last rejected attempt accumulated.
func (s *ErrorStore) GetCheckoutErrors(w http.ResponseWriter, r *http.Request) {
	messages := s.Drain(w, r)

	utils.SendSuccessResponse(w, models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"errors": messages,
		},
	})
}

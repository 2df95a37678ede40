package model

import "fmt"

// Scope identifies the conversation a workflow operation belongs to.
// The (UserID, ConversationID) pair is the sole session key; it is passed
// explicitly into every workflow function instead of living in ambient state.
type Scope struct {
	UserID         string
	ConversationID string
}

// NewScope builds a Scope, failing fast on missing identity fields.
// Empty identity is a caller bug, not user input.
func NewScope(userID, conversationID string) (Scope, error) {
	if userID == "" {
		return Scope{}, fmt.Errorf("scope: userID is required")
	}
	if conversationID == "" {
		return Scope{}, fmt.Errorf("scope: conversationID is required")
	}
	return Scope{UserID: userID, ConversationID: conversationID}, nil
}

// Key returns the storage key for this scope.
func (s Scope) Key() string {
	return s.UserID + ":" + s.ConversationID
}

// Validate reports whether both identity fields are set.
func (s Scope) Validate() error {
	_, err := NewScope(s.UserID, s.ConversationID)
	return err
}

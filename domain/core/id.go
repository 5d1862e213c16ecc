package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// SessionID tags one preparation session in the logs.
type SessionID ID

func (id SessionID) String() string { return ID(id).String() }

// Short returns the last eight characters. A v7 UUID starts with its
// timestamp, so the random tail is what tells sessions apart in a log.
func (id SessionID) Short() string {
	s := string(id)
	if len(s) > 8 {
		return s[len(s)-8:]
	}
	return s
}

// NewSessionID creates a fresh session identifier.
func NewSessionID() SessionID {
	return SessionID(NewID())
}

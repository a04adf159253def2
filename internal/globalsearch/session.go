package globalsearch

// SessionID identifies one search session. Ids are allocated by the engine
// and increase monotonically.
type SessionID int

// Session is one logical search triggered by a query change.
type Session struct {
	ID    SessionID
	Query string

	arrivalCounter int
	received       bool // a non-empty batch has arrived
}

// sessionTracker owns the notion of the current request.
type sessionTracker struct {
	current *Session
}

// start records a new current session, superseding the previous one.
func (t *sessionTracker) start(id SessionID, query string) *Session {
	t.current = &Session{ID: id, Query: query}
	return t.current
}

// IsCurrent reports whether id belongs to the current session.
func (t *sessionTracker) IsCurrent(id SessionID) bool {
	return t.current != nil && t.current.ID == id
}

// currentID returns the current session id and whether there is one.
func (t *sessionTracker) currentID() (SessionID, bool) {
	if t.current == nil {
		return 0, false
	}
	return t.current.ID, true
}

// end forgets the current session and returns its id.
func (t *sessionTracker) end() (SessionID, bool) {
	id, ok := t.currentID()
	t.current = nil
	return id, ok
}

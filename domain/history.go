package domain

// HistoryStore is the port for per-session conversation history.
// Implementations must be safe for concurrent use and must never hold their
// internal lock across a network call; Snapshot exists so callers can work
// on a copy while the store stays available to other sessions.
//
// History is ephemeral: it lives for the process lifetime only and there is
// no expiry, so a long-running process accumulates sessions unboundedly.
type HistoryStore interface {
	// GetOrCreate ensures an entry exists for the session id.
	GetOrCreate(sessionID string)

	// Append adds a prefixed turn string to the session's history,
	// creating the session when it does not exist yet.
	Append(sessionID string, turn string)

	// Snapshot returns a copy of the session's turns in chronological
	// order. Mutating the returned slice does not affect the store.
	Snapshot(sessionID string) []string
}

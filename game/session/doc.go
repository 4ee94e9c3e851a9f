// Package session provides in-memory session management for the solitaire
// engine.
//
// Each session owns one engine.GameEngine and the engine.EventLog it
// reports to. Sessions are keyed case-insensitively by a generated UUID
// or by a caller-chosen ID, and remember when they were last used so
// idle ones can be swept with CleanupExpiredSessions.
//
// Usage:
//
//	manager := session.NewManager(logger)
//
//	sess, err := manager.Create("", "normal", engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
// The manager guards its map with a RWMutex. It does not serialize access
// to a session's engine; the service layer does.
package session

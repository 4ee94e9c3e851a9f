// Package websocket pushes table updates to browser clients.
//
// A central Hub owns every connection. Clients join a session by connecting
// to /ws?session=<id>; each mutating API call then broadcasts a Message with
// the new engine.GameState and the engine events that produced it
// (draggable_changed, move_executed, move_undone, win, new_game), so a
// client can animate the change rather than redraw the table.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, result.GameState, result.Events)
//
// Broadcasting never blocks the caller: messages are queued for the hub
// goroutine, and a client that cannot keep up is disconnected.
package websocket

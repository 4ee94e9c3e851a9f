// Package api provides HTTP REST API handlers for the solitaire engine.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session {config_id, seed, difficulty}
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current table
//   - POST /api/sessions/{id}/drag - {card_id, target} where target is "free:0", "play:3", "goal:1"
//   - POST /api/sessions/{id}/double-click - {card_id}
//   - POST /api/sessions/{id}/undo
//   - POST /api/sessions/{id}/redo
//   - POST /api/sessions/{id}/autocomplete - {only_safe, step}
//   - POST /api/sessions/{id}/replay - Advance the win replay
//   - POST /api/sessions/{id}/new-game - {seed}; omit seed for a random deal
//   - GET /api/sessions/{id}/history - ?page=1&limit=20&order=desc
//
// Configuration:
//   - GET /api/configs - List variants
//   - GET /api/configs/{name} - Get a variant
//   - POST /api/configs - Save a variant (engine.GameConfig body)
//
// Other:
//   - GET /api/health
//   - GET /ws?session={id} - WebSocket stream of table updates
//
// Mutating endpoints answer with a service.MoveResult. A rejected move is
// a 200 with success false; the table and events show what happened.
// Every mutation is also broadcast to the session's websocket clients.
//
// Error Handling:
//
// Errors are returned as JSON {"error": "message"}. Unknown sessions and
// variants are 404, unknown cards, decks and invalid variants are 400,
// anything else is 500.
package api

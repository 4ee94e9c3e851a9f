// Package mcp exposes the solitaire engine to AI agents over the Model
// Context Protocol.
//
// The Client is a thin proxy: every tool call becomes a REST request against
// a running API server, and the JSON answer is rendered as text an agent can
// read. The table is written one play stack per line, bottom to top, with
// each card as CODE#ID and a trailing * when it can be dragged:
//
//	play:0   KS#12 QH#37*
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state
//   - drag (session_id, card_id, target, intent)
//   - double_click, undo, redo, autocomplete, new_game
//   - move_history (page, limit)
//   - list_configs, game_instructions
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// The drag tool takes an intent argument that is never sent to the API; it
// exists so the agent states its reasoning before each move.
package mcp

// Package service provides the business logic layer for the solitaire
// engine.
//
// The service package implements:
//   - Multi-session game management
//   - Variant selection and seeding
//   - Drag, double-click, undo/redo and autocomplete on a session's table
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager manages variant loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns an engine and an engine.EventLog; every
// mutating call returns the resulting table together with the notifications
// the engine raised while handling it. Engines are not safe for concurrent
// use, so the service serializes access to them.
//
// Usage:
//
//	sessionMgr := session.NewManager(logger)
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr, logger)
//
//	info, err := gameService.CreateSession(ctx, service.CreateSessionRequest{ConfigID: "hard"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Drag(ctx, info.ID, 12, "free:0")
//
// A rejected move is not an error: the result carries Success false and the
// unchanged table.
package service

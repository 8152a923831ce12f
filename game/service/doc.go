// Package service provides the business logic layer for the Goldforge
// puzzle server.
//
// The service package implements:
//   - Multi-session game management
//   - Level-pack management and loading
//   - Rule processing with rejection outcomes
//   - Session lifecycle management
//   - Rule history tracking
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game
// operations. SessionManager handles session creation, retrieval, and
// lifecycle. PackManager manages level-pack loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the game engine, providing session isolation, pack management, and
// level progression. Each session maintains its own game engine instance
// with independent state. The engine reports level completion; this layer
// advances the session to the next level (wrapping to the first when the
// pack is exhausted) so every transport sees the same progression.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	packMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, packMgr)
//
//	// Create a new session
//	sessionInfo, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Apply rules
//	result, err := gameService.ApplyRule(ctx, sessionInfo.ID, rule)
//
// Rejections:
//
// A rule the engine refuses (incomplete, invalid slot, exhausted
// resources) is not a transport error. ApplyRule returns a result with
// Success=false and an Outcome code, leaving the session untouched.
//
// Session Management:
//
// Sessions are identified by unique 4-character IDs and maintain
// independent game state. Multiple sessions can run concurrently with
// different packs. Sessions track creation time, last access time, and
// the cumulative rule log for analytics and debugging.
package service

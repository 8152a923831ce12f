// Package websocket provides WebSocket transport for the Goldforge
// puzzle server.
//
// The websocket package implements:
//   - Real-time state push to connected clients
//   - Session-aware WebSocket connections
//   - Automatic broadcasting after rules, undo, reset, and level changes
//   - Connection lifecycle management
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by dedicated
// read and write goroutines. All session bookkeeping happens on the
// hub's Run goroutine; producers interact with it only through channels,
// so the Hub must be started with go hub.Run() before broadcasting.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//
// The connection is push-only: clients change state through the REST
// API, and every change fans out here.
//
// Session Integration:
//
// Clients specify their session ID via query parameter (?session=ab12)
// when establishing the connection. State updates are broadcast only to
// clients connected to the same session.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a state change
//	hub.BroadcastState(sessionID, state)
package websocket

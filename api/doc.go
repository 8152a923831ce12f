// Package api provides the REST API server for the Goldforge puzzle
// server.
//
// The api package implements:
//   - Session lifecycle endpoints
//   - Rule application, undo, reset, and level selection
//   - Rule history with pagination
//   - Level-pack listing, retrieval, and upload
//   - WebSocket upgrade for live state updates
//
// Endpoints:
//
//	POST   /api/sessions              create a session (optional pack_id)
//	GET    /api/sessions              list sessions (sort, order, limit)
//	GET    /api/sessions/{id}         session info
//	DELETE /api/sessions/{id}         delete a session
//	GET    /api/sessions/{id}/state   current game state
//	POST   /api/sessions/{id}/rules   apply a rule {source, action, target}
//	POST   /api/sessions/{id}/undo    undo the last applied rule
//	POST   /api/sessions/{id}/reset   reset the current level
//	POST   /api/sessions/{id}/level   load a level {level}
//	GET    /api/sessions/{id}/history paginated rule log
//	GET    /api/packs                 list level packs
//	POST   /api/packs                 upload a level pack
//	GET    /api/packs/{name}          full pack definition
//	GET    /api/health                health check
//	GET    /ws?session={id}           WebSocket upgrade
//
// Rejections:
//
// A rejected rule (incomplete, invalid slot, insufficient resources)
// returns 200 with success=false and an outcome code. HTTP error codes
// are reserved for transport problems such as unknown sessions or
// malformed bodies.
//
// After every state change the server broadcasts the new state to
// WebSocket clients watching the session.
package api

// Package session provides session management for the Goldforge puzzle
// server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional JSON file persistence
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session
// operations. Each session owns its own engine instance plus metadata
// like creation time and last access time. FilePersistence stores one
// JSON file per session so sessions survive server restarts.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. IDs are
// case-insensitive and generated with cryptographic randomness.
//
// Concurrency:
//
// The session manager is thread-safe and supports concurrent
// operations. Multiple goroutines can safely create, retrieve, and
// modify different sessions simultaneously.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Create a new session
//	sess, err := manager.Create("", pack)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//
// Cleanup:
//
// CleanupExpiredSessions evicts sessions idle past a cutoff. With
// persistence enabled, the stored copy remains and an evicted session
// transparently reloads on the next Get.
package session

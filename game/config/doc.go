// Package config provides level-pack management for the Goldforge
// puzzle server.
//
// The config package handles:
//   - Loading level packs from JSON files
//   - Pack validation and caching
//   - Default pack selection
//   - Pack discovery and listing
//
// Pack Format:
//
// Level packs are stored as JSON files in the configs directory. Each
// pack defines:
//   - A legend mapping single layout characters to color IDs
//   - Level layouts, one string per board row
//   - The starting inventory (colors, actions, advanced symbols)
//   - User-facing messages for game events
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific pack
//	pack, err := manager.LoadPack("classic")
//
//	// Get default pack
//	defaultPack := manager.GetDefault()
//
//	// List available packs
//	packs, err := manager.ListPacks()
//
// Defaults:
//
// classic.json is preferred as the default pack. If it is missing, the
// first valid pack on disk is used; an empty directory falls back to
// the built-in pack so the server always has something playable.
package config

// Package mcp provides a Model Context Protocol server for the
// Goldforge puzzle.
//
// The package is a thin client: every tool call is proxied to the REST
// API over HTTP, so the MCP process carries no game state of its own
// and can run next to, or far away from, the game server.
//
// Tools:
//
//	create_session     create a session (optional pack_id)
//	list_sessions      list active sessions
//	get_session        session details
//	board_state        board, inventory, and level progress
//	apply_rule         forge and apply a rule (source, action, target)
//	undo               roll back the last applied rule
//	reset_game         reset the level layout (symbols stay spent)
//	load_level         jump to a level in the pack
//	rule_history       paginated rule attempt log
//	list_packs         available level packs
//	game_instructions  full rules and strategy text
//	describe_board     inspect a single board cell
//
// Responses are formatted as human-readable text: the board renders as
// a character grid ('.' empty, 'G' gold, first letter otherwise) with
// the inventory summarized per category.
package mcp

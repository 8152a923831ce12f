package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/goldforge/goldforge/game/engine"
	"github.com/goldforge/goldforge/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Goldforge Puzzle",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Goldforge Puzzle - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Turn every piece on the board to gold by forging rules. A rule has three
slots: a source color, an action, and a target color. Applying a rule
spends one of each symbol from a shared inventory, pushes every source
piece in the action's direction, then recolors the survivors.

AVAILABLE TOOLS:
- board_state: Get current board and inventory
- apply_rule: Forge and apply a rule (source + action + target) - requires intent explanation
- undo: Roll back the last applied rule
- reset_game: Reset the level layout (spent symbols stay spent)
- load_level: Jump to a specific level in the pack
- rule_history: View past rule attempts
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- list_packs: List available level packs
- game_instructions: Get comprehensive game instructions and rules
- describe_board: Get detailed info about a specific board cell

NOTE: The 'intent' parameter on apply_rule serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional pack selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"pack_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the level pack to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "board_state",
		Description: "Get the current board, inventory, and level progress",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleBoardState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "apply_rule",
		Description: "Forge a rule from three inventory symbols and apply it to the board. The source pieces slide in the action's direction, then turn into the target color.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Color ID of the pieces to act on (e.g. red)",
				},
				"action": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"push-up", "push-down", "push-left", "push-right"},
					"description": "Action symbol to apply",
				},
				"target": map[string]interface{}{
					"type":        "string",
					"description": "Color ID the source pieces become (gold wins levels)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this rule (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "source", "action", "target"},
		},
	}, c.handleApplyRule)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "undo",
		Description: "Undo the last applied rule, restoring board and inventory",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleUndo)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the board to the level's starting layout. Spent inventory is NOT refunded.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "load_level",
		Description: "Load a specific level from the session's pack",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"level": map[string]interface{}{
					"type":        "integer",
					"description": "Zero-based level index",
				},
			},
			Required: []string{"session_id", "level"},
		},
	}, c.handleLoadLevel)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "rule_history",
		Description: "Get the rule attempt log for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleRuleHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_packs",
		Description: "List available level packs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPacks)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_board",
		Description: "Get detailed information about a specific board cell, including its color and whether it can still change.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"x": map[string]interface{}{
					"type":        "integer",
					"description": "X coordinate (column) of the cell to describe (0-based)",
				},
				"y": map[string]interface{}{
					"type":        "integer",
					"description": "Y coordinate (row) of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "x", "y"},
		},
	}, c.handleDescribeBoard)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	packID, _ := args["pack_id"].(string)

	body := map[string]string{}
	if packID != "" {
		body["pack_id"] = packID
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPack: %s\n\n%s",
		session.ID, session.PackID, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		level := ""
		if s.GameState != nil {
			level = fmt.Sprintf(", Level %d: %s", s.GameState.LevelIndex, s.GameState.LevelName)
		}
		result += fmt.Sprintf("- %s (Pack: %s%s, Created: %s)\n",
			s.ID, s.PackID, level, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleBoardState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.State
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleApplyRule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	source, _ := args["source"].(string)
	action, _ := args["action"].(string)
	target, _ := args["target"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"source": map[string]string{"id": source, "category": string(categoryForColor(source))},
		"action": map[string]string{"id": action, "category": string(engine.CategoryAction)},
		"target": map[string]string{"id": target, "category": string(categoryForColor(target))},
	}

	var result service.ApplyResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/rules", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatApplyResult(&result)), nil
}

// categoryForColor picks the inventory category for a color-like slot.
// Gold lives in the advanced pool; everything else is a plain color.
func categoryForColor(id string) engine.Category {
	if id == engine.GoldID {
		return engine.CategoryAdvanced
	}
	return engine.CategoryColor
}

func (c *Client) handleUndo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.UndoResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/undo", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	header := "Nothing to undo"
	if result.Undone {
		header = fmt.Sprintf("Undone. %d checkpoint(s) remaining", result.Depth)
	}

	response := fmt.Sprintf("%s\n\n%s", header, formatGameState(result.GameState))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var response struct {
		Message string        `json:"message"`
		State   *engine.State `json:"state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleLoadLevel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	level := 0
	if v, ok := args["level"].(float64); ok {
		level = int(v)
	}

	var state engine.State
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/level", sessionID),
		map[string]int{"level": level}, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Loaded level %d: %s\n\n%s", state.LevelIndex, state.LevelName, formatGameState(&state))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRuleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListPacks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var packs []service.PackInfo
	err := c.apiCall("GET", "/api/packs", nil, &packs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Level Packs:\n\n"
	for _, pack := range packs {
		result += fmt.Sprintf("• %s (id: %s)\n  %s\n  Grid: %dx%d, Levels: %d\n\n",
			pack.Name, pack.PackID, pack.Description, pack.GridSize, pack.GridSize, pack.LevelCount)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🔨 Goldforge Puzzle - Complete Instructions

GAME OBJECTIVE:
Turn every piece on the board to gold. A level is complete the moment no
non-gold piece remains.

GAME MECHANICS:
• Rules: A rule fills three slots - source color, action, target color
• Cost: Applying a rule spends ONE of each chosen symbol from the shared inventory
• Slide: Every source-colored piece slides in the action's direction until
  it hits the wall or another piece
• Transform: After the slide, every source-colored piece becomes the target color
• Gold is final: Gold pieces never move as source and never change color again

THE INVENTORY:
• Colors: Plain paints (red, blue, yellow, ...) usable in source and target slots
• Actions: Directional pushes (push-up, push-down, push-left, push-right)
• Advanced: Gold - allowed in the TARGET slot only; this is how you win

REJECTION RULES (the rule is refused, nothing is spent):
• incomplete_rule: One or more slots are empty
• invalid_slot: A symbol sits in a slot its category doesn't allow
  (e.g. an action in the source slot, or gold as source)
• insufficient_resources: A chosen symbol has count 0

🤖 AI AGENTS - SUCCESS STRATEGIES:

1. **Spend gold wisely**: Gold symbols are your win condition and they are
   finite. Recolor intermediate pieces with plain colors, then gild once.
2. **Consolidate before gilding**: A rule recolors EVERY source piece.
   Merge colors first (red->blue) so a single gold rule finishes more
   pieces at once.
3. **Slides chain**: Pieces stop against each other. Pushing a column of
   same-colored pieces compacts them against the wall.
4. **Budget across levels**: The inventory persists for the whole pack.
   Overspending on level one can strand you on level three.
5. **Undo is free**: Undo restores both board and inventory. Use it to
   explore. Reset does NOT refund symbols - prefer undo.
6. **Board reading**: The grid shows one character per cell. '.' is empty,
   'G' is gold, other letters abbreviate color IDs (r=red, b=blue, ...).
   Use describe_board when a character is ambiguous.

LEVEL PROGRESSION:
- Completing a level automatically advances to the next one
- Finishing the last level wraps back to the first (endless practice)
- Leftover inventory carries into the next level
- load_level jumps anywhere in the pack; the inventory still carries

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent board state but one shared inventory each
- Use session-specific tools for multi-game management

Remember: every applied rule is a purchase. Check the inventory, plan the
slide, and save your gold for the finishing blow. Happy forging! 🔨✨`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	x := int(args["x"].(float64))
	y := int(args["y"].(float64))

	var state engine.State
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	gridSize := len(state.Board)
	if x < 0 || x >= gridSize || y < 0 || y >= gridSize {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Board size is %dx%d (0-%d for both x and y)",
			x, y, gridSize, gridSize, gridSize-1)), nil
	}

	cell := state.Board[y][x]

	var description string
	switch cell {
	case engine.EmptyCell:
		description = "Empty cell - pieces can slide into it"
	case engine.GoldID:
		description = "Gold piece - finished. It will never move or change color again"
	default:
		description = fmt.Sprintf("A %s piece - usable as a rule source, and recolorable", cell)
	}

	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Character: %s
Color: %s
Description: %s`,
		x, y, cellChar(cell), colorLabel(cell), description)

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPack: %s\nCreated: %s\n\n%s",
		session.ID, session.PackID,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatGameState(state *engine.State) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Pack: %s | Level %d: %s | Attempts: %d | Undo depth: %d\n\n",
		state.PackName, state.LevelIndex, state.LevelName, state.TotalAttempts, len(state.History)))

	// Board
	for _, row := range state.Board {
		for _, cell := range row {
			result.WriteString(cellChar(cell))
		}
		result.WriteString("\n")
	}

	// Inventory, in stable category order
	result.WriteString("\nInventory:\n")
	for _, cat := range []engine.Category{engine.CategoryColor, engine.CategoryAction, engine.CategoryAdvanced} {
		symbols := state.Inventory[cat]
		if len(symbols) == 0 {
			continue
		}
		parts := make([]string, 0, len(symbols))
		for _, sym := range symbols {
			parts = append(parts, fmt.Sprintf("%s×%d", sym.ID, sym.Count))
		}
		result.WriteString(fmt.Sprintf("  %s: %s\n", cat, strings.Join(parts, ", ")))
	}

	if state.Complete {
		result.WriteString("\n🏆 LEVEL COMPLETE!")
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("\nMessage: %s", state.Message))
	}

	return result.String()
}

// cellChar maps a cell's color ID to a single display character. Empty
// is '.', gold is 'G', other colors abbreviate to their first letter.
func cellChar(cell string) string {
	switch cell {
	case engine.EmptyCell:
		return "."
	case engine.GoldID:
		return "G"
	default:
		return strings.ToLower(cell[:1])
	}
}

func colorLabel(cell string) string {
	if cell == engine.EmptyCell {
		return "(empty)"
	}
	return cell
}

func formatApplyResult(result *service.ApplyResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString(fmt.Sprintf("✓ Rule applied: moved %d piece(s), recolored %d\n", result.Moved, result.Changed))
	} else {
		b.WriteString(fmt.Sprintf("✗ Rule rejected: %s\n", result.Outcome))
	}

	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	if result.LevelComplete {
		if result.Wrapped {
			b.WriteString(fmt.Sprintf("\n🏆 LEVEL COMPLETE! Pack finished - wrapped back to level %d.\n", result.NextLevel))
		} else {
			b.WriteString(fmt.Sprintf("\n🏆 LEVEL COMPLETE! Advanced to level %d.\n", result.NextLevel))
		}
		if result.CompletedBoard != nil {
			b.WriteString("Final board:\n")
			for _, row := range result.CompletedBoard {
				for _, cell := range row {
					b.WriteString(cellChar(cell))
				}
				b.WriteString("\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Rule History (Page %d/%d) — Total attempts: %d\n\n",
		history.Page, history.TotalPages, history.Total)

	if len(history.Entries) == 0 {
		return result + "(no rules attempted yet)"
	}

	for _, entry := range history.Entries {
		status := "✓"
		if !entry.Success {
			status = "✗"
		}
		line := fmt.Sprintf("%d. %s + %s -> %s %s", entry.Seq, entry.Source, entry.Action, entry.Target, status)
		if entry.Success {
			line += fmt.Sprintf(" [moved=%d changed=%d level=%d]", entry.Moved, entry.Changed, entry.LevelIndex)
		} else {
			line += fmt.Sprintf(" [%s]", entry.Outcome)
		}
		result += line + "\n"
	}

	return result
}

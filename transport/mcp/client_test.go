package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/goldforge/goldforge/game/engine"
	"github.com/goldforge/goldforge/game/service"
)

func mcpTestState() *engine.State {
	return &engine.State{
		PackName:   "Classic",
		LevelIndex: 0,
		LevelName:  "First Steps",
		Board: engine.Board{
			{"red", "", "", ""},
			{"", "blue", "", ""},
			{"", "", "gold", ""},
			{"", "", "", ""},
		},
		Inventory: engine.Inventory{
			engine.CategoryColor: {
				{ID: "red", Label: "Red", Count: 5},
				{ID: "blue", Label: "Blue", Count: 3},
			},
			engine.CategoryAction: {
				{ID: "push-up", Label: "Push Up", Count: 4},
			},
			engine.CategoryAdvanced: {
				{ID: "gold", Label: "Gold", Count: 7},
			},
		},
		TotalAttempts: 2,
		Message:       "Welcome to Goldforge!",
	}
}

func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	if client == nil {
		t.Fatal("Expected client to be created")
	}

	if client.baseURL != baseURL {
		t.Errorf("Expected baseURL %s, got %s", baseURL, client.baseURL)
	}

	if client.httpClient == nil {
		t.Error("Expected HTTP client to be initialized")
	}

	if client.mcpServer == nil {
		t.Error("Expected MCP server to be initialized")
	}
}

func TestClient_apiCall(t *testing.T) {
	expectedResponse := map[string]interface{}{
		"id":      "ab12",
		"pack_id": "classic",
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expectedResponse)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	var response map[string]interface{}
	err := client.apiCall("GET", "/api", nil, &response)
	if err != nil {
		t.Fatalf("apiCall failed: %v", err)
	}

	if response["id"] != expectedResponse["id"] {
		t.Errorf("Expected id %v, got %v", expectedResponse["id"], response["id"])
	}
}

func TestClient_apiCall_Error(t *testing.T) {
	client := NewClient("http://invalid-url-that-does-not-exist:9999")

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for invalid URL")
	}
}

func TestClient_apiCall_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api", nil, nil)
	if err == nil {
		t.Error("Expected error for HTTP 500 response")
	}

	if !strings.Contains(err.Error(), "API error") {
		t.Errorf("Expected 'API error' in error message, got: %v", err)
	}
}

func TestClient_apiCall_JSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found: zz99"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.apiCall("GET", "/api/sessions/zz99", nil, nil)
	if err == nil {
		t.Fatal("Expected error for HTTP 404 response")
	}

	if !strings.Contains(err.Error(), "session not found: zz99") {
		t.Errorf("Expected API error message to pass through, got: %v", err)
	}
}

func TestClient_handleCreateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			t.Errorf("Expected POST /api/sessions, got %s %s", r.Method, r.URL.Path)
		}

		resp := service.SessionInfo{
			ID:        "ab12",
			PackID:    "classic",
			GameState: mcpTestState(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "create_session",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleCreateSession(context.Background(), request)
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	if !strings.Contains(text.Text, "ab12") {
		t.Errorf("Expected session ID in result, got: %s", text.Text)
	}
	if !strings.Contains(text.Text, "classic") {
		t.Errorf("Expected pack ID in result, got: %s", text.Text)
	}
}

func TestClient_handleApplyRule(t *testing.T) {
	var gotBody map[string]map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions/ab12/rules" {
			t.Errorf("Expected POST /api/sessions/ab12/rules, got %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)

		resp := service.ApplyResult{
			Success:   true,
			Outcome:   "applied",
			Moved:     2,
			Changed:   1,
			Message:   "Rule applied",
			GameState: mcpTestState(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "apply_rule",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"source":     "red",
				"action":     "push-up",
				"target":     "gold",
				"intent":     "gild the reds against the top wall",
			},
		},
	}

	result, err := client.handleApplyRule(context.Background(), request)
	if err != nil {
		t.Fatalf("handleApplyRule failed: %v", err)
	}

	if gotBody["source"]["id"] != "red" || gotBody["source"]["category"] != "color" {
		t.Errorf("Unexpected source slot in request body: %+v", gotBody["source"])
	}
	if gotBody["action"]["id"] != "push-up" || gotBody["action"]["category"] != "action" {
		t.Errorf("Unexpected action slot in request body: %+v", gotBody["action"])
	}
	if gotBody["target"]["id"] != "gold" || gotBody["target"]["category"] != "advanced" {
		t.Errorf("Unexpected target slot in request body: %+v", gotBody["target"])
	}

	text := result.Content[0].(mcp.TextContent)
	if !strings.Contains(text.Text, "moved 2") || !strings.Contains(text.Text, "recolored 1") {
		t.Errorf("Expected move/recolor counts in result, got: %s", text.Text)
	}
}

func TestClient_handleApplyRule_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := service.ApplyResult{
			Success:   false,
			Outcome:   "insufficient_resources",
			Message:   "Not enough symbols",
			GameState: mcpTestState(),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "apply_rule",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"source":     "red",
				"action":     "push-up",
				"target":     "gold",
			},
		},
	}

	result, err := client.handleApplyRule(context.Background(), request)
	if err != nil {
		t.Fatalf("handleApplyRule failed: %v", err)
	}

	text := result.Content[0].(mcp.TextContent)
	if !strings.Contains(text.Text, "Rule rejected: insufficient_resources") {
		t.Errorf("Expected rejection outcome in result, got: %s", text.Text)
	}
}

func TestClient_handleDescribeBoard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mcpTestState())
	}))
	defer server.Close()

	client := NewClient(server.URL)

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"color piece", 0, 0, "red piece"},
		{"gold piece", 2, 2, "Gold piece"},
		{"empty cell", 3, 3, "Empty cell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := mcp.CallToolRequest{
				Params: mcp.CallToolParams{
					Name: "describe_board",
					Arguments: map[string]interface{}{
						"session_id": "ab12",
						"x":          tt.x,
						"y":          tt.y,
					},
				},
			}

			result, err := client.handleDescribeBoard(context.Background(), request)
			if err != nil {
				t.Fatalf("handleDescribeBoard failed: %v", err)
			}

			text := result.Content[0].(mcp.TextContent)
			if !strings.Contains(text.Text, tt.want) {
				t.Errorf("Expected %q in result, got: %s", tt.want, text.Text)
			}
		})
	}
}

func TestClient_handleDescribeBoard_OutOfBounds(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(mcpTestState())
	}))
	defer server.Close()

	client := NewClient(server.URL)

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name: "describe_board",
			Arguments: map[string]interface{}{
				"session_id": "ab12",
				"x":          float64(7),
				"y":          float64(0),
			},
		},
	}

	result, err := client.handleDescribeBoard(context.Background(), request)
	if err != nil {
		t.Fatalf("handleDescribeBoard failed: %v", err)
	}

	if !result.IsError {
		t.Error("Expected error result for out-of-bounds coordinates")
	}
}

func TestFormatGameState(t *testing.T) {
	result := formatGameState(mcpTestState())

	expectedFields := []string{
		"Pack: Classic",
		"Level 0: First Steps",
		"Attempts: 2",
		"red×5",
		"push-up×4",
		"gold×7",
		"Welcome to Goldforge!",
	}

	for _, field := range expectedFields {
		if !strings.Contains(result, field) {
			t.Errorf("Expected field %q in formatted output, got: %s", field, result)
		}
	}

	// Board renders one character per cell.
	if !strings.Contains(result, "r...") {
		t.Errorf("Expected row 'r...' in board render, got: %s", result)
	}
	if !strings.Contains(result, "..G.") {
		t.Errorf("Expected row '..G.' in board render, got: %s", result)
	}
}

func TestFormatGameState_Complete(t *testing.T) {
	state := mcpTestState()
	state.Complete = true

	result := formatGameState(state)

	if !strings.Contains(result, "LEVEL COMPLETE") {
		t.Errorf("Expected 'LEVEL COMPLETE' in result, got: %s", result)
	}
}

func TestFormatGameState_Nil(t *testing.T) {
	if got := formatGameState(nil); !strings.Contains(got, "No game state") {
		t.Errorf("Expected nil-state placeholder, got: %s", got)
	}
}

func TestFormatApplyResult_LevelComplete(t *testing.T) {
	result := formatApplyResult(&service.ApplyResult{
		Success:       true,
		Outcome:       "applied",
		Moved:         1,
		Changed:       3,
		LevelComplete: true,
		NextLevel:     1,
		CompletedBoard: engine.Board{
			{"gold", "gold", "", ""},
			{"", "", "", ""},
			{"", "", "", ""},
			{"", "", "", ""},
		},
		GameState: mcpTestState(),
	})

	if !strings.Contains(result, "LEVEL COMPLETE! Advanced to level 1") {
		t.Errorf("Expected advancement notice, got: %s", result)
	}
	if !strings.Contains(result, "GG..") {
		t.Errorf("Expected completed board render, got: %s", result)
	}
}

func TestFormatApplyResult_Wrapped(t *testing.T) {
	result := formatApplyResult(&service.ApplyResult{
		Success:       true,
		Outcome:       "applied",
		LevelComplete: true,
		NextLevel:     0,
		Wrapped:       true,
		GameState:     mcpTestState(),
	})

	if !strings.Contains(result, "wrapped back to level 0") {
		t.Errorf("Expected wrap notice, got: %s", result)
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Total:      2,
		Page:       1,
		TotalPages: 1,
		Entries: []engine.RuleLogEntry{
			{Seq: 2, Source: "red", Action: "push-up", Target: "gold", Outcome: "applied", Success: true, Moved: 2, Changed: 1},
			{Seq: 1, Source: "blue", Action: "push-left", Target: "red", Outcome: "insufficient_resources", Success: false},
		},
	}

	result := formatHistory(history)

	if !strings.Contains(result, "Page 1/1") {
		t.Errorf("Expected pagination header, got: %s", result)
	}
	if !strings.Contains(result, "red + push-up -> gold ✓") {
		t.Errorf("Expected applied entry, got: %s", result)
	}
	if !strings.Contains(result, "[insufficient_resources]") {
		t.Errorf("Expected rejection code on failed entry, got: %s", result)
	}
}

func TestFormatHistory_Empty(t *testing.T) {
	result := formatHistory(&service.HistoryResponse{Page: 1, TotalPages: 1})

	if !strings.Contains(result, "no rules attempted yet") {
		t.Errorf("Expected empty-history placeholder, got: %s", result)
	}
}

func TestCellChar(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"", "."},
		{"gold", "G"},
		{"red", "r"},
		{"Blue", "b"},
	}

	for _, tt := range tests {
		if got := cellChar(tt.cell); got != tt.want {
			t.Errorf("cellChar(%q) = %q, want %q", tt.cell, got, tt.want)
		}
	}
}

func TestClient_handleGameInstructions(t *testing.T) {
	client := NewClient("http://localhost:8080")

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "game_instructions",
			Arguments: map[string]interface{}{},
		},
	}

	result, err := client.handleGameInstructions(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGameInstructions failed: %v", err)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("Expected text content in result")
	}

	expectedContent := []string{
		"GAME OBJECTIVE:",
		"GAME MECHANICS:",
		"THE INVENTORY:",
		"REJECTION RULES",
		"incomplete_rule",
		"invalid_slot",
		"insufficient_resources",
		"LEVEL PROGRESSION:",
		"SESSION MANAGEMENT:",
	}

	for _, content := range expectedContent {
		if !strings.Contains(text.Text, content) {
			t.Errorf("Expected %q in instructions", content)
		}
	}
}

func TestClient_Integration(t *testing.T) {
	client := NewClient("http://localhost:8080")

	if client == nil {
		t.Fatal("Failed to create client")
	}

	if client.mcpServer == nil {
		t.Fatal("MCP server not initialized")
	}

	if client.GetMCPServer() != client.mcpServer {
		t.Error("GetMCPServer should return the configured server")
	}
}

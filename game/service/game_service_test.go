package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/goldforge/goldforge/game/engine"
	"github.com/goldforge/goldforge/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, pack *engine.LevelPack) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(pack)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Pack:           pack,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, pack *engine.LevelPack) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, pack)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("session not found")
}

func (m *MockSessionManager) Save(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return errors.New("session not found")
	}
	// Mock save - the real manager persists to disk here
	return nil
}

// MockPackManager implements service.PackManager for testing
type MockPackManager struct {
	packs map[string]*engine.LevelPack
}

func NewMockPackManager() *MockPackManager {
	pack := servicePack()
	return &MockPackManager{
		packs: map[string]*engine.LevelPack{
			"test":    pack,
			"default": pack,
		},
	}
}

func (m *MockPackManager) LoadPack(name string) (*engine.LevelPack, error) {
	pack, exists := m.packs[name]
	if !exists {
		return nil, errors.New("pack not found")
	}
	return pack, nil
}

func (m *MockPackManager) ListPacks() ([]*service.PackInfo, error) {
	result := make([]*service.PackInfo, 0, len(m.packs))
	for name, pack := range m.packs {
		result = append(result, &service.PackInfo{
			Filename:    name + ".json",
			PackID:      name,
			Name:        pack.Name,
			Description: pack.Description,
			GridSize:    pack.GridSize,
			LevelCount:  len(pack.Levels),
		})
	}
	return result, nil
}

func (m *MockPackManager) GetDefault() *engine.LevelPack {
	return m.packs["default"]
}

func (m *MockPackManager) SavePack(name string, pack *engine.LevelPack) error {
	m.packs[name] = pack
	return nil
}

// servicePack builds a small two-level pack where level one is solved
// by a single red/push-up/gold rule.
func servicePack() *engine.LevelPack {
	pack := &engine.LevelPack{
		Name:        "Service Test Pack",
		Description: "Pack for service tests",
		GridSize:    4,
		Legend: map[string]string{
			".": engine.EmptyCell,
			"r": "red",
			"b": "blue",
		},
		Levels: []engine.Level{
			{Name: "One", Layout: []string{
				"....",
				".r..",
				"....",
				"....",
			}},
			{Name: "Two", Layout: []string{
				"....",
				"r..r",
				"....",
				"....",
			}},
		},
		Inventory: engine.InventoryDef{
			Colors: []engine.Symbol{
				{ID: "red", Label: "Red", Count: 10},
				{ID: "blue", Label: "Blue", Count: 5},
				{ID: "yellow", Label: "Yellow", Count: 0},
			},
			Actions: []engine.Symbol{
				{ID: "push-up", Label: "Push Up", Count: 10},
			},
			Advanced: []engine.Symbol{
				{ID: engine.GoldID, Label: "Gold", Count: 10},
			},
		},
	}
	pack.Messages.Welcome = "Welcome!"
	pack.Messages.Insufficient = "Not enough resources"
	pack.Messages.LevelComplete = "Level complete!"
	return pack
}

func goldRule(source string) engine.Rule {
	return engine.Rule{
		Source: &engine.SlotRef{ID: source, Category: engine.CategoryColor},
		Action: &engine.SlotRef{ID: "push-up", Category: engine.CategoryAction},
		Target: &engine.SlotRef{ID: engine.GoldID, Category: engine.CategoryAdvanced},
	}
}

func newTestService() (service.GameService, *MockSessionManager) {
	sessions := NewMockSessionManager()
	return service.NewGameService(sessions, NewMockPackManager()), sessions
}

func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	tests := []struct {
		name    string
		packID  string
		wantErr bool
	}{
		{
			name:    "create with default pack",
			packID:  "",
			wantErr: false,
		},
		{
			name:    "create with specific pack",
			packID:  "test",
			wantErr: false,
		},
		{
			name:    "create with unknown pack",
			packID:  "nonexistent",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.packID)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if session == nil {
					t.Fatal("CreateSession() returned nil session")
				}
				if session.GameState == nil || session.GameState.LevelIndex != 0 {
					t.Errorf("Expected fresh session on level 0, got %+v", session.GameState)
				}
			}
		})
	}
}

func TestGameService_ApplyRule_Success(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	result, err := svc.ApplyRule(ctx, info.ID, goldRule("red"))
	if err != nil {
		t.Fatalf("ApplyRule() error = %v", err)
	}
	if !result.Success || result.Outcome != engine.OutcomeApplied {
		t.Errorf("Expected applied outcome, got success=%v outcome=%q", result.Success, result.Outcome)
	}
	if result.Moved != 1 || result.Changed != 1 {
		t.Errorf("Expected moved=1 changed=1, got moved=%d changed=%d", result.Moved, result.Changed)
	}
}

func TestGameService_ApplyRule_AdvancesOnCompletion(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// The single red piece turns gold: level one is done in one rule.
	result, err := svc.ApplyRule(ctx, info.ID, goldRule("red"))
	if err != nil {
		t.Fatalf("ApplyRule() error = %v", err)
	}

	if !result.LevelComplete || !result.Advanced {
		t.Fatalf("Expected level completion with advance, got %+v", result)
	}
	if result.NextLevel != 1 || result.Wrapped {
		t.Errorf("Expected next_level=1 without wrap, got next=%d wrapped=%v", result.NextLevel, result.Wrapped)
	}
	if result.CompletedBoard == nil || result.CompletedBoard[0][1] != engine.GoldID {
		t.Errorf("Expected completed board snapshot with gold at (0,1), got %v", result.CompletedBoard)
	}
	if result.GameState.LevelIndex != 1 || result.GameState.LevelName != "Two" {
		t.Errorf("Expected session on level 1 'Two', got %d %q",
			result.GameState.LevelIndex, result.GameState.LevelName)
	}
}

func TestGameService_ApplyRule_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	tests := []struct {
		name    string
		rule    engine.Rule
		outcome string
	}{
		{
			name:    "missing slots",
			rule:    engine.Rule{Source: &engine.SlotRef{ID: "red", Category: engine.CategoryColor}},
			outcome: engine.OutcomeIncomplete,
		},
		{
			name: "action symbol in source slot",
			rule: engine.Rule{
				Source: &engine.SlotRef{ID: "push-up", Category: engine.CategoryAction},
				Action: &engine.SlotRef{ID: "push-up", Category: engine.CategoryAction},
				Target: &engine.SlotRef{ID: engine.GoldID, Category: engine.CategoryAdvanced},
			},
			outcome: engine.OutcomeInvalidSlot,
		},
		{
			name:    "exhausted symbol",
			rule:    goldRule("yellow"),
			outcome: engine.OutcomeInsufficient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.ApplyRule(ctx, info.ID, tt.rule)
			if err != nil {
				t.Fatalf("Rejection should not be a transport error, got %v", err)
			}
			if result.Success || result.Outcome != tt.outcome {
				t.Errorf("Expected outcome %q, got success=%v outcome=%q", tt.outcome, result.Success, result.Outcome)
			}
		})
	}

	// Nothing should have been consumed or staged for undo.
	sess, _ := sessions.Get(info.ID)
	if sess.Engine.HistoryDepth() != 0 {
		t.Errorf("Expected no checkpoints after rejections, got depth %d", sess.Engine.HistoryDepth())
	}

	if _, err := svc.ApplyRule(ctx, "nonexistent", goldRule("red")); err == nil {
		t.Error("Expected error for unknown session")
	}
}

func TestGameService_Undo(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// No checkpoints yet: undo is a quiet no-op.
	res, err := svc.Undo(ctx, info.ID)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if res.Undone || res.Depth != 0 {
		t.Errorf("Expected no-op undo on empty history, got %+v", res)
	}

	// Advance to level two, then apply a recolor there. Gilding would
	// complete level two as well and the wrap would clear the history,
	// so the staged rule must leave the level unfinished.
	if _, err := svc.ApplyRule(ctx, info.ID, goldRule("red")); err != nil {
		t.Fatalf("Failed to complete level one: %v", err)
	}
	recolor := engine.Rule{
		Source: &engine.SlotRef{ID: "red", Category: engine.CategoryColor},
		Action: &engine.SlotRef{ID: "push-up", Category: engine.CategoryAction},
		Target: &engine.SlotRef{ID: "blue", Category: engine.CategoryColor},
	}
	result, err := svc.ApplyRule(ctx, info.ID, recolor)
	if err != nil {
		t.Fatalf("Failed to apply rule on level two: %v", err)
	}
	if result.LevelComplete {
		t.Fatal("Recolor should not complete level two")
	}

	res, err = svc.Undo(ctx, info.ID)
	if err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if !res.Undone {
		t.Error("Expected undo to consume a checkpoint")
	}
	if res.GameState.Board[1][0] != "red" || res.GameState.Board[1][3] != "red" {
		t.Errorf("Expected level-two board restored, got %v", res.GameState.Board)
	}
	if res.GameState.LevelIndex != 1 {
		t.Errorf("Undo should stay on level two, got level %d", res.GameState.LevelIndex)
	}
}

func TestGameService_Reset(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err := svc.LoadLevel(ctx, info.ID, 1); err != nil {
		t.Fatalf("Failed to load level: %v", err)
	}

	// Recolor instead of gilding so the level stays incomplete.
	recolor := engine.Rule{
		Source: &engine.SlotRef{ID: "red", Category: engine.CategoryColor},
		Action: &engine.SlotRef{ID: "push-up", Category: engine.CategoryAction},
		Target: &engine.SlotRef{ID: "blue", Category: engine.CategoryColor},
	}
	if _, err := svc.ApplyRule(ctx, info.ID, recolor); err != nil {
		t.Fatalf("Failed to apply rule: %v", err)
	}

	state, err := svc.Reset(ctx, info.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if state.Board[1][0] != "red" || state.Board[1][3] != "red" {
		t.Errorf("Expected board back to the level template, got %v", state.Board)
	}
}

func TestGameService_LoadLevel(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	state, err := svc.LoadLevel(ctx, info.ID, 1)
	if err != nil {
		t.Fatalf("LoadLevel() error = %v", err)
	}
	if state.LevelIndex != 1 || state.LevelName != "Two" {
		t.Errorf("Expected level 1 'Two', got %d %q", state.LevelIndex, state.LevelName)
	}

	if _, err := svc.LoadLevel(ctx, info.ID, 99); err == nil {
		t.Error("Expected error for out-of-range level")
	}
}

func TestGameService_GetRuleHistory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// Generate a mix of applied and rejected entries.
	for i := 0; i < 3; i++ {
		if _, err := svc.ApplyRule(ctx, info.ID, goldRule("red")); err != nil {
			t.Fatalf("Failed to apply rule %d: %v", i, err)
		}
	}
	if _, err := svc.ApplyRule(ctx, info.ID, goldRule("yellow")); err != nil {
		t.Fatalf("Failed to apply rejected rule: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantErr   bool
	}{
		{
			name:      "default options",
			sessionID: info.ID,
			opts:      service.HistoryOptions{},
			wantErr:   false,
		},
		{
			name:      "with pagination",
			sessionID: info.ID,
			opts: service.HistoryOptions{
				Page:  1,
				Limit: 2,
				Order: "asc",
			},
			wantErr: false,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			opts:      service.HistoryOptions{},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetRuleHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("GetRuleHistory() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if result.Total != 4 {
					t.Errorf("Expected 4 log entries, got %d", result.Total)
				}
				if result.Entries == nil {
					t.Error("GetRuleHistory() returned nil entries slice")
				}
			}
		})
	}

	// Default order is newest first; the rejection was last.
	result, err := svc.GetRuleHistory(ctx, info.ID, service.HistoryOptions{})
	if err != nil {
		t.Fatalf("GetRuleHistory() error = %v", err)
	}
	if len(result.Entries) != 4 || result.Entries[0].Success {
		t.Errorf("Expected rejected entry first in desc order, got %+v", result.Entries)
	}

	// Paginated ascending slice.
	asc, err := svc.GetRuleHistory(ctx, info.ID, service.HistoryOptions{Page: 2, Limit: 3, Order: "asc"})
	if err != nil {
		t.Fatalf("GetRuleHistory() error = %v", err)
	}
	if len(asc.Entries) != 1 || asc.TotalPages != 2 || asc.HasNext || !asc.HasPrevious {
		t.Errorf("Unexpected pagination: %+v", asc)
	}
}

func TestGameService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateSession(ctx, "test"); err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
}

func TestGameService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	info, err := svc.CreateSession(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if err := svc.DeleteSession(ctx, info.ID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetGameState(ctx, info.ID); err == nil {
		t.Error("Expected error fetching state for deleted session")
	}
}

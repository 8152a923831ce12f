package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/goldforge/goldforge/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	packs    PackManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, packs PackManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		packs:    packs,
	}
}

// getPackID returns the pack_id for a given pack display name, used for
// consistent API responses
func (s *gameServiceImpl) getPackID(packName string) string {
	available, err := s.packs.ListPacks()
	if err == nil {
		for _, p := range available {
			if p.Name == packName {
				return p.PackID
			}
		}
	}
	if packName == "" {
		return "default"
	}
	return packName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, packID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pack *engine.LevelPack
	var err error
	if packID != "" {
		pack, err = s.packs.LoadPack(packID)
		if err != nil {
			if strings.Contains(err.Error(), "pack not found") {
				available, listErr := s.packs.ListPacks()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, p := range available {
						ids = append(ids, p.PackID)
					}
					return nil, fmt.Errorf("pack '%s' not found. Available packs: %v", packID, ids)
				}
				return nil, fmt.Errorf("pack '%s' not found. Use /api/packs to list available packs", packID)
			}
			return nil, fmt.Errorf("failed to load pack %s: %w", packID, err)
		}
	} else {
		pack = s.packs.GetDefault()
	}

	// Let the session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", pack)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	id := packID
	if id == "" {
		id = s.getPackID(pack.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		PackID:         id,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		Pack:           session.Pack,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		PackID:         s.getPackID(session.Pack.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.GetState(),
		Pack:           session.Pack,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			PackID:         s.getPackID(sess.Pack.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.GetState(),
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// ApplyRule runs one rule through a session's engine. Engine rejections
// (incomplete rule, bad slot, exhausted resources) come back as a
// non-success ApplyResult rather than an error: the session stays
// healthy and nothing was mutated.
func (s *gameServiceImpl) ApplyRule(ctx context.Context, sessionID string, rule engine.Rule) (*ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	report, err := sess.Engine.ApplyRule(rule)
	if err != nil {
		outcome, ok := rejectionOutcome(err)
		if !ok {
			return nil, err
		}
		return &ApplyResult{
			Success:   false,
			Outcome:   outcome,
			Message:   sess.Engine.GetState().Message,
			GameState: sess.Engine.GetState(),
		}, nil
	}

	result := &ApplyResult{
		Success:       true,
		Outcome:       engine.OutcomeApplied,
		Moved:         report.Moved,
		Changed:       report.Changed,
		Message:       sess.Engine.GetState().Message,
		LevelComplete: report.LevelComplete,
		NextLevel:     report.NextLevel,
		Wrapped:       report.Wrapped,
	}

	if report.LevelComplete {
		// Keep the finished board for the UI, then advance the session.
		// The engine only reports completion; progression is ours.
		result.CompletedBoard = sess.Engine.GetState().Board.Clone()
		if _, err := sess.Engine.AdvanceLevel(); err != nil {
			return nil, fmt.Errorf("failed to advance level: %w", err)
		}
		result.Advanced = true
	}

	result.GameState = sess.Engine.GetState()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after rule apply: %v", sessionID, err)
	}

	return result, nil
}

// rejectionOutcome maps engine rejection errors to outcome codes
func rejectionOutcome(err error) (string, bool) {
	switch {
	case errors.Is(err, engine.ErrIncompleteRule):
		return engine.OutcomeIncomplete, true
	case errors.Is(err, engine.ErrInsufficientResources):
		return engine.OutcomeInsufficient, true
	case errors.Is(err, engine.ErrInvalidSlot):
		return engine.OutcomeInvalidSlot, true
	default:
		return "", false
	}
}

// Undo rolls a session back one checkpoint. Empty history is a quiet
// no-op, mirrored in the result.
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*UndoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	undone := sess.Engine.Undo()
	st := sess.Engine.GetState()

	if undone {
		if err := s.sessions.Save(sessionID); err != nil {
			log.Printf("Warning: Failed to persist session %s after undo: %v", sessionID, err)
		}
	}

	return &UndoResult{
		Undone:    undone,
		Depth:     sess.Engine.HistoryDepth(),
		GameState: st,
		Message:   st.Message,
	}, nil
}

// Reset restores a session's board to the level template. The
// inventory is untouched: reset is not a refund.
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset()

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after reset: %v", sessionID, err)
	}

	return state, nil
}

// LoadLevel switches a session to a specific level in its pack
func (s *gameServiceImpl) LoadLevel(ctx context.Context, sessionID string, levelIndex int) (*engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	if err := sess.Engine.LoadLevel(levelIndex); err != nil {
		return nil, err
	}

	if err := s.sessions.Save(sessionID); err != nil {
		log.Printf("Warning: Failed to persist session %s after level load: %v", sessionID, err)
	}

	return sess.Engine.GetState(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState(), nil
}

// GetRuleHistory returns a paginated view of the cumulative rule log
func (s *gameServiceImpl) GetRuleHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetRuleLog()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var entries []engine.RuleLogEntry
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			entries = append(entries, history[i])
		}
	} else if start < total {
		entries = history[start:end]
	}

	if entries == nil {
		entries = []engine.RuleLogEntry{}
	}

	return &HistoryResponse{
		Entries:     entries,
		Total:       total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPacks returns available level packs
func (s *gameServiceImpl) ListPacks(ctx context.Context) ([]*PackInfo, error) {
	return s.packs.ListPacks()
}

// LoadPack loads a specific level pack
func (s *gameServiceImpl) LoadPack(ctx context.Context, packID string) (*engine.LevelPack, error) {
	return s.packs.LoadPack(packID)
}

// SavePack saves a level pack to disk
func (s *gameServiceImpl) SavePack(ctx context.Context, packID string, pack *engine.LevelPack) error {
	return s.packs.SavePack(packID, pack)
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goldforge/goldforge/game/engine"
	"github.com/goldforge/goldforge/game/service"
)

var (
	ErrPackNotFound = errors.New("pack not found")
	ErrInvalidPack  = errors.New("invalid pack")
)

// Manager handles level-pack loading and caching
type Manager struct {
	packDir     string
	defaultPack *engine.LevelPack
	packs       map[string]*engine.LevelPack
	mu          sync.RWMutex
}

// NewManager creates a new pack manager rooted at packDir
func NewManager(packDir string) (*Manager, error) {
	if _, err := os.Stat(packDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("pack directory does not exist: %s", packDir)
	}

	m := &Manager{
		packDir: packDir,
		packs:   make(map[string]*engine.LevelPack),
	}

	if err := m.loadDefaultPack(); err != nil {
		return nil, fmt.Errorf("failed to load default pack: %w", err)
	}

	return m, nil
}

// LoadPack loads a level pack by ID (filename without extension)
func (m *Manager) LoadPack(name string) (*engine.LevelPack, error) {
	m.mu.RLock()
	if pack, exists := m.packs[name]; exists {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if pack, exists := m.packs[name]; exists {
		return pack, nil
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.packDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrPackNotFound
		}
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack engine.LevelPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack: %w", err)
	}

	if err := engine.ValidateLevelPack(&pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	m.packs[name] = &pack
	return &pack, nil
}

// ListPacks returns information about all available level packs
func (m *Manager) ListPacks() ([]*service.PackInfo, error) {
	entries, err := os.ReadDir(m.packDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack directory: %w", err)
	}

	var packs []*service.PackInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")

		pack, err := m.LoadPack(name)
		if err != nil {
			// Skip invalid packs
			continue
		}

		packs = append(packs, &service.PackInfo{
			Filename:    entry.Name(),
			PackID:      name, // identifier used for session creation
			Name:        pack.Name,
			Description: pack.Description,
			GridSize:    pack.GridSize,
			LevelCount:  len(pack.Levels),
		})
	}

	return packs, nil
}

// GetDefault returns the default level pack
func (m *Manager) GetDefault() *engine.LevelPack {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultPack
}

// SetDefault sets the default pack by ID
func (m *Manager) SetDefault(name string) error {
	pack, err := m.LoadPack(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultPack = pack
	return nil
}

// RefreshCache drops cached packs so the next load re-reads disk
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.packs = make(map[string]*engine.LevelPack)
	m.mu.Unlock()

	return m.loadDefaultPack()
}

// loadDefaultPack picks the default: classic.json if present, else the
// first valid pack on disk, else the built-in pack.
func (m *Manager) loadDefaultPack() error {
	pack, err := m.LoadPack("classic")
	if err != nil {
		packs, listErr := m.ListPacks()
		if listErr == nil && len(packs) > 0 {
			pack, err = m.LoadPack(packs[0].PackID)
		}
		if pack == nil || err != nil {
			pack = engine.DefaultLevelPack()
		}
	}

	m.mu.Lock()
	m.defaultPack = pack
	m.mu.Unlock()
	return nil
}

// SavePack validates and writes a pack to disk, updating the cache
func (m *Manager) SavePack(name string, pack *engine.LevelPack) error {
	if err := engine.ValidateLevelPack(pack); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pack: %w", err)
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	if err := os.WriteFile(filepath.Join(m.packDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}

	m.mu.Lock()
	m.packs[strings.TrimSuffix(filename, ".json")] = pack
	m.mu.Unlock()
	return nil
}

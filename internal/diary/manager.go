package diary

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"nutridiary/internal/models"
)

// ErrBadDate rejects a date key that is not YYYY-MM-DD.
var ErrBadDate = errors.New("date must be YYYY-MM-DD")

// maxIdleSessions caps the session map. When exceeded, clean (Loaded)
// sessions are dropped; dirty and saving ones always survive, so no
// unsaved edit is ever lost to the sweep.
const maxIdleSessions = 256

// GoalsSource supplies the user's current goals for seeding brand-new
// diary days.
type GoalsSource interface {
	LoadGoals(ctx context.Context, userID uint) (models.DailyGoals, error)
}

// Manager hands out one Assembly per (user, date) so every edit for a
// day funnels through the same in-memory state.
type Manager struct {
	store Store
	goals GoalsSource

	mu       sync.Mutex
	sessions map[string]*Assembly
}

func NewManager(store Store, goals GoalsSource) *Manager {
	return &Manager{
		store:    store,
		goals:    goals,
		sessions: make(map[string]*Assembly),
	}
}

// Day returns the loaded assembly for a user's date, creating and
// lazily seeding it on first access.
func (m *Manager) Day(ctx context.Context, userID uint, date string) (*Assembly, error) {
	if !ValidDate(date) {
		return nil, ErrBadDate
	}

	key := sessionKey(userID, date)
	m.mu.Lock()
	asm, ok := m.sessions[key]
	if !ok {
		asm = NewAssembly(m.store, userID, date)
		m.sessions[key] = asm
		if len(m.sessions) > maxIdleSessions {
			m.sweepCleanLocked(key)
		}
	}
	m.mu.Unlock()

	if asm.State() == StateUninitialized {
		goals, err := m.goals.LoadGoals(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("loading goals for day seed: %w", err)
		}
		if err := asm.Load(ctx, goals); err != nil {
			return nil, err
		}
	}
	return asm, nil
}

// EvictFrom drops every session of a user for dates on or after the
// given date key. Goal propagation rewrites the snapshots of today's
// and future days in storage, so their in-memory copies must reload.
// YYYY-MM-DD keys order lexicographically, so plain string comparison
// selects the window.
func (m *Manager) EvictFrom(userID uint, date string) {
	prefix := fmt.Sprintf("%d:", userID)
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.sessions {
		if strings.HasPrefix(key, prefix) && key[len(prefix):] >= date {
			delete(m.sessions, key)
		}
	}
}

// Sessions reports how many day sessions are held in memory.
func (m *Manager) Sessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweepCleanLocked drops every clean session except keep. A Loaded
// session carries no unsaved state and reloads from the store on next
// access. Callers hold m.mu.
func (m *Manager) sweepCleanLocked(keep string) {
	for key, asm := range m.sessions {
		if key == keep {
			continue
		}
		if asm.State() == StateLoaded {
			delete(m.sessions, key)
		}
	}
}

func sessionKey(userID uint, date string) string {
	return fmt.Sprintf("%d:%s", userID, date)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date key.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil && len(s) == 10
}

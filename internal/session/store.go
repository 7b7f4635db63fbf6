package session

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/udisondev/arcana/internal/data"
	"github.com/udisondev/arcana/internal/game/combat"
)

var (
	// ErrPlayerNotFound is returned by a ProfileStore for unknown player ids.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrNotInSession is returned for players that have not joined.
	ErrNotInSession = errors.New("player not in session")
	// ErrRateLimited is returned when a player sends casts faster than allowed.
	ErrRateLimited = errors.New("cast rate limited")
	// ErrUnknownSkill is returned by LevelUp for skills missing from the catalog.
	ErrUnknownSkill = errors.New("unknown skill")
)

// ProfileStore is the Player Store: it owns persisted mana and learned skills.
type ProfileStore interface {
	LoadProfile(ctx context.Context, playerID int64) (combat.Profile, error)
	SaveMana(ctx context.Context, playerID int64, mana combat.ManaState) error
	SaveSkillLevel(ctx context.Context, playerID int64, skill data.SkillID, level int) error
}

// MemoryStore is an in-process ProfileStore for database-less runs and tests.
// Unknown players are created on first load from the template when one is set.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[int64]combat.Profile
	template *combat.Profile
}

// NewMemoryStore creates an empty store. With a non-nil template, loading an
// unknown player creates it from a copy of the template instead of failing.
func NewMemoryStore(template *combat.Profile) *MemoryStore {
	return &MemoryStore{
		profiles: make(map[int64]combat.Profile),
		template: template,
	}
}

// Put stores a profile, replacing any previous one.
func (s *MemoryStore) Put(playerID int64, p combat.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Skills = maps.Clone(p.Skills)
	s.profiles[playerID] = p
}

// LoadProfile returns a copy of the stored profile.
func (s *MemoryStore) LoadProfile(_ context.Context, playerID int64) (combat.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[playerID]
	if !ok {
		if s.template == nil {
			return combat.Profile{}, ErrPlayerNotFound
		}
		p = *s.template
		p.Skills = maps.Clone(s.template.Skills)
		s.profiles[playerID] = p
	}
	p.Skills = maps.Clone(p.Skills)
	return p, nil
}

func (s *MemoryStore) SaveMana(_ context.Context, playerID int64, mana combat.ManaState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	p.Mana, p.MaxMana = mana.Current, mana.Max
	s.profiles[playerID] = p
	return nil
}

func (s *MemoryStore) SaveSkillLevel(_ context.Context, playerID int64, skill data.SkillID, level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if p.Skills == nil {
		p.Skills = make(map[data.SkillID]int)
	}
	if level <= 0 {
		delete(p.Skills, skill)
	} else {
		p.Skills[skill] = level
	}
	s.profiles[playerID] = p
	return nil
}

// Package monster models creature stats. Stats scale linearly with level and
// health/xp carry a bounded random jitter rolled at creation.
package monster

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/milk9111/tilequest/prefabs"
)

var (
	ErrUnknownSpecies = errors.New("monster: unknown species")
	ErrUnknownStat    = errors.New("monster: unknown stat")
	ErrInvalidLevel   = errors.New("monster: level must be positive")
)

const (
	StatMaxHealth = "max_health"

	healthJitter   = 200
	xpRange        = 1000
	levelUpPerRank = 150
)

// Species is the immutable base-stat table of one monster kind.
type Species struct {
	Name    string
	Element string
	Stats   map[string]float64
}

// Table maps species names to their base stats.
type Table map[string]*Species

// LoadTable reads monsters.yaml.
func LoadTable() (Table, error) {
	specs, err := prefabs.LoadSpeciesSpecs()
	if err != nil {
		return nil, err
	}
	return NewTable(specs)
}

// NewTable copies specs into a table. Every species needs a max_health of at
// least 1 so rolled health never exceeds max_health*level.
func NewTable(specs map[string]prefabs.SpeciesSpec) (Table, error) {
	t := make(Table, len(specs))
	for name, s := range specs {
		if hp, ok := s.Stats[StatMaxHealth]; !ok || hp < 1 {
			return nil, fmt.Errorf("%w: %s needs %s >= 1", ErrUnknownStat, name, StatMaxHealth)
		}
		stats := make(map[string]float64, len(s.Stats))
		for k, v := range s.Stats {
			stats[k] = v
		}
		t[name] = &Species{Name: name, Element: s.Element, Stats: stats}
	}
	return t, nil
}

// Names returns the species names in sorted order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Monster struct {
	Name    string
	Level   int
	Element string
	Health  float64
	XP      int
	LevelUp int

	species *Species
}

// New rolls a monster of species at level:
//
//	health   = max_health*level - U(0,200), floored at 1
//	xp       = U(0,1000)
//	level_up = level*150
func New(t Table, species string, level int, rng *rand.Rand) (*Monster, error) {
	s, ok := t[species]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}
	if level < 1 {
		return nil, fmt.Errorf("%w: %s at level %d", ErrInvalidLevel, species, level)
	}

	m := &Monster{
		Name:    species,
		Level:   level,
		Element: s.Element,
		LevelUp: level * levelUpPerRank,
		species: s,
	}
	m.Health = s.Stats[StatMaxHealth]*float64(level) - float64(rng.IntN(healthJitter+1))
	if m.Health < 1 {
		m.Health = 1
	}
	m.XP = rng.IntN(xpRange + 1)
	return m, nil
}

// Stat returns the base stat scaled by level.
func (m *Monster) Stat(name string) (float64, error) {
	base, ok := m.species.Stats[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no %q", ErrUnknownStat, m.Name, name)
	}
	return base * float64(m.Level), nil
}

// MaxHealth is the unjittered health ceiling for the monster's level.
func (m *Monster) MaxHealth() float64 {
	v, _ := m.Stat(StatMaxHealth)
	return v
}

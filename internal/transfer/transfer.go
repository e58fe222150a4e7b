// Package transfer moves weapon entries in and out of the store as JSON.
//
// Export writes the current envelope {version, exportDate, standard, gogma}
// or, in legacy mode, a flat map of standard records. Import accepts both,
// plus version 2 envelopes, and never overwrites a weapon that already
// holds data in the mode being imported.
package transfer

import (
	"time"

	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

// Envelope section names per mode.
const (
	SectionStandard  = "standard"
	SectionSkillPair = "gogma"
)

// skillPairAliases are accepted as the skill-pair section name on import.
var skillPairAliases = []string{SectionSkillPair, "skillPair"}

// Gateway imports and exports entries against a store.
type Gateway struct {
	store      store.Store
	bus        *events.Bus[events.DataImported]
	strategies map[types.Mode]shape.Strategy
	now        func() time.Time
}

// New creates a Gateway for the given mode strategies. bus may be nil.
func New(st store.Store, bus *events.Bus[events.DataImported], strategies ...shape.Strategy) *Gateway {
	g := &Gateway{
		store:      st,
		bus:        bus,
		strategies: make(map[types.Mode]shape.Strategy, len(strategies)),
		now:        time.Now,
	}
	for _, s := range strategies {
		g.strategies[s.Mode()] = s
	}
	return g
}

func sectionName(mode types.Mode) string {
	if mode == types.ModeSkillPair {
		return SectionSkillPair
	}
	return SectionStandard
}

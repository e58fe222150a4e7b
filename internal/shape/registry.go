package shape

import (
	"sort"
	"sync"

	"github.com/hyperengineering/artian/internal/types"
)

// registry holds all registered record strategies.
var (
	registryMu sync.RWMutex
	strategies = make(map[types.Mode]Strategy)
)

// Register adds a strategy to the registry.
// Strategies should be registered early in main().
// Panics if a strategy for the same mode is already registered.
func Register(s Strategy) {
	registryMu.Lock()
	defer registryMu.Unlock()

	m := s.Mode()
	if _, exists := strategies[m]; exists {
		panic("strategy already registered: " + string(m))
	}
	strategies[m] = s
}

// Get returns the strategy for mode.
func Get(mode types.Mode) (Strategy, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	s, ok := strategies[mode]
	return s, ok
}

// MustGet returns the strategy for mode.
// Panics if none is registered.
func MustGet(mode types.Mode) Strategy {
	s, ok := Get(mode)
	if !ok {
		panic("no strategy for mode: " + string(mode))
	}
	return s
}

// All returns every registered strategy in types.Modes order.
func All() []Strategy {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Strategy, 0, len(strategies))
	for _, m := range types.Modes {
		if s, ok := strategies[m]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Registered returns the modes with a registered strategy, sorted.
func Registered() []types.Mode {
	registryMu.RLock()
	defer registryMu.RUnlock()

	modes := make([]types.Mode, 0, len(strategies))
	for m := range strategies {
		modes = append(modes, m)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// Reset clears the registry. Only for testing.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	strategies = make(map[types.Mode]Strategy)
}

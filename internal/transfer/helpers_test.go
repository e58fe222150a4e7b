package transfer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/shape/skillpair"
	"github.com/hyperengineering/artian/internal/shape/standard"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 589_000_000, time.UTC)

type fixture struct {
	store    *store.MemoryStore
	bus      *events.Bus[events.DataImported]
	gateway  *Gateway
	received []events.DataImported
}

func newFixture(t *testing.T, seed map[string]string) *fixture {
	t.Helper()
	f := &fixture{
		store: store.NewMemoryStoreFrom(seed),
		bus:   events.NewBus[events.DataImported](),
	}
	f.bus.Subscribe(func(_ context.Context, e events.DataImported) {
		f.received = append(f.received, e)
	})
	f.gateway = New(f.store, f.bus, standard.New(), skillpair.New())
	f.gateway.now = func() time.Time { return fixedNow }
	return f
}

func (f *fixture) entry(t *testing.T, key string) types.WeaponEntry {
	t.Helper()
	raw, err := f.store.Read(context.Background(), key)
	require.NoError(t, err)
	var e types.WeaponEntry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))
	return e
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

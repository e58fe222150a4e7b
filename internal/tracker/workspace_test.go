package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperengineering/artian/internal/events"
	"github.com/hyperengineering/artian/internal/shape/skillpair"
	"github.com/hyperengineering/artian/internal/shape/standard"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

func newWorkspace(t *testing.T, st store.Store, clock Clock, bus *events.Bus[events.DataImported]) *Workspace {
	t.Helper()
	w := NewWorkspace(st, bus, testOptions(clock), standard.New(), skillpair.New())
	t.Cleanup(w.Close)
	return w
}

func TestWorkspace_ModeSwitchingKeepsItem(t *testing.T) {
	st := store.NewMemoryStore()
	w := newWorkspace(t, st, newFakeClock(), nil)
	ctx := context.Background()

	assert.Equal(t, types.ModeStandard, w.ActiveMode())
	require.NoError(t, w.SelectItem(ctx, bow()))

	require.NoError(t, w.SetMode(ctx, types.ModeSkillPair))
	assert.Equal(t, types.ModeSkillPair, w.Active().Mode())
	assert.Equal(t, "bow", w.Active().Session().Item.ID)
	assert.Equal(t, "gogma", st.Snapshot()[store.ModeKey])

	assert.ErrorIs(t, w.SetMode(ctx, "tier"), ErrUnknownMode)
}

func TestWorkspace_ActivateDoesNotPersist(t *testing.T) {
	st := store.NewMemoryStore()
	w := newWorkspace(t, st, newFakeClock(), nil)

	require.NoError(t, w.Activate(types.ModeSkillPair))
	assert.Equal(t, types.ModeSkillPair, w.ActiveMode())
	assert.NotContains(t, st.Snapshot(), store.ModeKey)
	assert.ErrorIs(t, w.Activate("tier"), ErrUnknownMode)
}

func TestWorkspace_RestoreMode(t *testing.T) {
	st := store.NewMemoryStoreFrom(map[string]string{store.ModeKey: "gogma"})
	w := newWorkspace(t, st, newFakeClock(), nil)

	require.NoError(t, w.RestoreMode(context.Background()))
	assert.Equal(t, types.ModeSkillPair, w.ActiveMode())

	st = store.NewMemoryStoreFrom(map[string]string{store.ModeKey: "garbage"})
	w = newWorkspace(t, st, newFakeClock(), nil)
	require.NoError(t, w.RestoreMode(context.Background()))
	assert.Equal(t, types.ModeStandard, w.ActiveMode())
}

func TestWorkspace_ClearAll(t *testing.T) {
	clock := newFakeClock()
	st := store.NewMemoryStore()
	w := newWorkspace(t, st, clock, nil)
	ctx := context.Background()
	require.NoError(t, w.SelectItem(ctx, bow()))
	pickAll(t, w.Active(), "attack-I", "affinity-I")
	require.NoError(t, st.Write(ctx, "lance", `{"artian":[{"number":1,"attributes":["attack-I"]}],"gogma":[]}`))

	cleared, err := w.ClearAll(ctx)
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.True(t, w.ClearAllArmed())

	cleared, err = w.ClearAll(ctx)
	require.NoError(t, err)
	assert.True(t, cleared)

	assert.Equal(t, map[string]string{store.DataVersionKey: "3"}, st.Snapshot())
	s := w.Active().Session()
	require.NotNil(t, s.Item, "selection survives a full wipe")
	assert.Equal(t, "bow", s.Item.ID)
	assert.Empty(t, s.Current.Slots)
}

func TestWorkspace_ClearAllArmExpires(t *testing.T) {
	clock := newFakeClock()
	st := store.NewMemoryStoreFrom(map[string]string{"bow": `{"artian":[{"number":1,"attributes":["attack-I"]}],"gogma":[]}`})
	w := newWorkspace(t, st, clock, nil)
	ctx := context.Background()

	_, _ = w.ClearAll(ctx)
	clock.Advance(DefaultOptions().ArmTimeout)
	assert.False(t, w.ClearAllArmed())

	cleared, err := w.ClearAll(ctx)
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.Contains(t, st.Snapshot(), "bow")
}

func TestWorkspace_ReloadsOnImportEvent(t *testing.T) {
	st := store.NewMemoryStore()
	bus := events.NewBus[events.DataImported]()
	w := newWorkspace(t, st, newFakeClock(), bus)
	ctx := context.Background()
	require.NoError(t, w.SelectItem(ctx, bow()))

	require.NoError(t, st.Write(ctx, "bow", `{"artian":[{"number":1,"attributes":["attack-I"]}],"gogma":[{"number":1,"groupSkill":"lords-soul","setBonus":null}]}`))
	bus.Publish(ctx, events.NewDataImported([]string{"bow"}, newFakeClock().Now()))

	std, err := w.Tracker(types.ModeStandard)
	require.NoError(t, err)
	sp, err := w.Tracker(types.ModeSkillPair)
	require.NoError(t, err)

	assert.Equal(t, []types.Slot{"attack-I"}, std.Session().Current.Slots)
	assert.Equal(t, []types.Slot{"lords-soul", ""}, sp.Session().Current.Slots)
}

func TestWorkspace_CloseUnsubscribes(t *testing.T) {
	bus := events.NewBus[events.DataImported]()
	w := NewWorkspace(store.NewMemoryStore(), bus, testOptions(newFakeClock()), standard.New(), skillpair.New())
	assert.Equal(t, 2, bus.Len())

	w.Close()
	assert.Equal(t, 0, bus.Len())
}

package tracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

func TestRender_NoItem(t *testing.T) {
	tr := newStandard(t, store.NewMemoryStore(), newFakeClock())

	table, err := tr.Render(context.Background())
	require.NoError(t, err)

	assert.Nil(t, table.Item)
	assert.Empty(t, table.Rows)
	assert.Equal(t, Header(types.ModeStandard), table.Header)
}

func TestRender_RowsAndCells(t *testing.T) {
	st := store.NewMemoryStore()
	tr := newStandard(t, st, newFakeClock())
	ctx := context.Background()
	require.NoError(t, tr.SelectItem(ctx, bow()))
	pickAll(t, tr, fiveFields...)
	pickAll(t, tr, "sharpness-EX")

	require.NoError(t, tr.SelectCell(ctx, types.CellRef{Number: 1, Position: 2}))
	_, err := tr.RequestDelete(ctx, 2)
	require.NoError(t, err)

	table, err := tr.Render(ctx)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	first, second := table.Rows[0], table.Rows[1]

	assert.Equal(t, 1, first.Number)
	assert.False(t, first.Current)
	require.Len(t, first.Cells, 5)
	assert.Equal(t, "Element I", first.Cells[2].Label)
	assert.Equal(t, "level-I", first.Cells[2].Class)
	assert.True(t, first.Cells[2].Selected)
	assert.False(t, first.Cells[1].Selected)

	assert.True(t, second.Armed)
	assert.True(t, second.Current)
	assert.Equal(t, "level-EX", second.Cells[0].Class)
	assert.True(t, second.Cells[1].Empty())
	assert.Equal(t, 2, table.Next)
}

func TestToggleSort(t *testing.T) {
	st := store.NewMemoryStore()
	tr := newStandard(t, st, newFakeClock())
	ctx := context.Background()
	require.NoError(t, tr.SelectItem(ctx, bow()))
	pickAll(t, tr, fiveFields...)
	pickAll(t, tr, "attack-III")
	before := st.Snapshot()["bow"]

	table, err := tr.ToggleSort(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.SortDescending, table.Sort)
	assert.Equal(t, []int{2, 1}, rowNumbers(table))
	assert.Equal(t, before, st.Snapshot()["bow"], "sorting does not touch stored data")

	table, err = tr.ToggleSort(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, rowNumbers(table))
}

func TestHeader_ByMode(t *testing.T) {
	assert.Equal(t, []string{"Roll #", "Group Skill", "Set Bonus"}, Header(types.ModeSkillPair))
	assert.Len(t, Header(types.ModeStandard), 6)
	assert.Nil(t, Header("tier"))
}

func TestRender_SkillPairCells(t *testing.T) {
	st := store.NewMemoryStore()
	tr := newSkillPair(t, st, newFakeClock())
	ctx := context.Background()
	require.NoError(t, tr.SelectItem(ctx, bow()))
	require.NoError(t, tr.SetFocus("affinity"))
	pickAll(t, tr, "mizutsune")

	table, err := tr.Render(ctx)
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	cells := table.Rows[0].Cells
	require.Len(t, cells, 2)
	assert.True(t, cells[0].Empty())
	assert.Equal(t, "Mizutsune's Prowess", cells[1].Label)
	assert.Equal(t, "gogma-green", cells[1].Class)
	assert.Equal(t, "affinity", table.Focus)
}

func rowNumbers(table Table) []int {
	out := make([]int, 0, len(table.Rows))
	for _, r := range table.Rows {
		out = append(out, r.Number)
	}
	return out
}

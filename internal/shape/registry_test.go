package shape

import (
	"testing"

	"github.com/hyperengineering/artian/internal/types"
)

// stubStrategy is a minimal Strategy for testing the registry.
type stubStrategy struct {
	mode types.Mode
}

func (s *stubStrategy) Mode() types.Mode { return s.mode }
func (s *stubStrategy) SlotCount() int { return 1 }
func (s *stubStrategy) Header() []string { return []string{"Roll #", "Only"} }
func (s *stubStrategy) Fields() []FieldInfo { return nil }
func (s *stubStrategy) Describe(id string) FieldInfo { return FieldInfo{ID: id, Label: id} }
func (s *stubStrategy) RequiresFocus() bool { return false }
func (s *stubStrategy) Rolls(types.WeaponEntry) []types.Roll { return nil }
func (s *stubStrategy) WithRolls(e types.WeaponEntry, _ []types.Roll) types.WeaponEntry {
	return e
}
func (s *stubStrategy) NewRoll(n int) types.Roll { return types.Roll{Number: n} }
func (s *stubStrategy) Complete(types.Roll) bool { return false }
func (s *stubStrategy) Append(r types.Roll, _ string) (types.Roll, error) {
	return r, nil
}
func (s *stubStrategy) Place(r types.Roll, _ int, _ string) (types.Roll, error) {
	return r, nil
}

func TestRegister_NewStrategy(t *testing.T) {
	Reset()
	Register(&stubStrategy{mode: types.ModeStandard})

	got, ok := Get(types.ModeStandard)
	if !ok {
		t.Fatal("Get() ok = false, want true")
	}
	if got.Mode() != types.ModeStandard {
		t.Errorf("Get().Mode() = %q, want %q", got.Mode(), types.ModeStandard)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	Reset()
	Register(&stubStrategy{mode: types.ModeSkillPair})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Register duplicate did not panic")
		}
		if msg, _ := r.(string); msg != "strategy already registered: gogma" {
			t.Errorf("panic message = %q", msg)
		}
	}()

	Register(&stubStrategy{mode: types.ModeSkillPair})
}

func TestGet_NotRegistered(t *testing.T) {
	Reset()

	if _, ok := Get(types.ModeStandard); ok {
		t.Error("Get() ok = true on empty registry")
	}
}

func TestMustGet_PanicsWhenMissing(t *testing.T) {
	Reset()

	defer func() {
		if recover() == nil {
			t.Fatal("MustGet did not panic")
		}
	}()
	MustGet(types.ModeSkillPair)
}

func TestAll_ModeOrder(t *testing.T) {
	Reset()
	Register(&stubStrategy{mode: types.ModeSkillPair})
	Register(&stubStrategy{mode: types.ModeStandard})

	all := All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d strategies, want 2", len(all))
	}
	if all[0].Mode() != types.ModeStandard || all[1].Mode() != types.ModeSkillPair {
		t.Errorf("All() order = [%s %s], want [standard gogma]", all[0].Mode(), all[1].Mode())
	}

	modes := Registered()
	if len(modes) != 2 || modes[0] != types.ModeSkillPair {
		t.Errorf("Registered() = %v, want sorted modes", modes)
	}
}

func TestReset(t *testing.T) {
	Register(&stubStrategy{mode: "extra"})
	Reset()

	if len(Registered()) != 0 {
		t.Errorf("Registered() after Reset = %v", Registered())
	}
}

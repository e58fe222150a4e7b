package types

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWeaponEntry_NilArraysMarshalAsArrays(t *testing.T) {
	// Zero-value entry must serialize both arrays
	data, err := json.Marshal(WeaponEntry{})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	if string(data) != `{"artian":[],"gogma":[]}` {
		t.Errorf("empty entry = %s, want both arrays as []", data)
	}
}

func TestWeaponEntry_StorageFormat(t *testing.T) {
	entry := WeaponEntry{
		Artian: []StandardRoll{{Number: 1, Attributes: []Slot{"attack-I", "", "element-II"}}},
		Gogma:  []SkillPairRoll{{Number: 1, GroupSkill: "lords-soul"}},
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"artian":[{"number":1,"attributes":["attack-I",null,"element-II"]}],"gogma":[{"number":1,"groupSkill":"lords-soul","setBonus":null}]}`
	if string(data) != want {
		t.Errorf("Marshal =\n%s\nwant\n%s", data, want)
	}
}

func TestStandardRoll_NilAttributesMarshalAsArray(t *testing.T) {
	data, err := json.Marshal(StandardRoll{Number: 2})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"attributes":[]`) {
		t.Errorf("nil Attributes should marshal as [], got: %s", data)
	}
}

func TestSlot_UnmarshalRejectsNonString(t *testing.T) {
	var r StandardRoll
	err := json.Unmarshal([]byte(`{"number":1,"attributes":[42]}`), &r)
	if err == nil {
		t.Fatal("expected error for numeric slot")
	}
}

func TestSlot_UnmarshalNull(t *testing.T) {
	var r SkillPairRoll
	if err := json.Unmarshal([]byte(`{"number":3,"groupSkill":null,"setBonus":"rey-dau"}`), &r); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if r.GroupSkill.Filled() {
		t.Errorf("GroupSkill = %q, want empty", r.GroupSkill)
	}
	if r.SetBonus != "rey-dau" {
		t.Errorf("SetBonus = %q, want rey-dau", r.SetBonus)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"standard", ModeStandard, false},
		{"artian", ModeStandard, false},
		{"GOGMA", ModeSkillPair, false},
		{"skill-pair", ModeSkillPair, false},
		{"tier", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoll_FilledCountAndClone(t *testing.T) {
	r := Roll{Number: 1, Slots: []Slot{"attack-I", "", "sharpness-EX"}}
	if got := r.FilledCount(); got != 2 {
		t.Errorf("FilledCount = %d, want 2", got)
	}

	c := r.Clone()
	c.Slots[0] = "affinity-I"
	if r.Slots[0] != "attack-I" {
		t.Error("Clone shares backing array with original")
	}
}

func TestSortOrder_Flip(t *testing.T) {
	if SortAscending.Flip() != SortDescending {
		t.Error("ascending should flip to descending")
	}
	if SortDescending.Flip() != SortAscending {
		t.Error("descending should flip to ascending")
	}
}

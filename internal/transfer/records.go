package transfer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/hyperengineering/artian/internal/migrate"
	"github.com/hyperengineering/artian/internal/types"
	"github.com/hyperengineering/artian/internal/validation"
)

// decodeSection validates one item's records for mode and returns an entry
// holding only that mode's array, with attribute ids normalized.
func decodeSection(mode types.Mode, value gjson.Result) (types.WeaponEntry, error) {
	records := value
	if mode == types.ModeSkillPair && value.IsObject() {
		// version 2 stored skill-pair data as {focusType, rolls}
		records = value.Get("rolls")
	}
	if !records.IsArray() {
		return types.WeaponEntry{}, errors.New("weapon data must be an array")
	}

	var entry types.WeaponEntry
	for i, rec := range records.Array() {
		var err error
		switch mode {
		case types.ModeSkillPair:
			var r types.SkillPairRoll
			if r, err = decodeSkillPair(rec); err == nil {
				entry.Gogma = append(entry.Gogma, r)
			}
		default:
			var r types.StandardRoll
			if r, err = decodeStandard(rec); err == nil {
				entry.Artian = append(entry.Artian, r)
			}
		}
		if err != nil {
			return types.WeaponEntry{}, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return migrate.NormalizeEntry(entry), nil
}

func decodeStandard(rec gjson.Result) (types.StandardRoll, error) {
	if !rec.IsObject() {
		return types.StandardRoll{}, errors.New("each roll must be an object")
	}
	if err := checkNumber(rec.Get("number")); err != nil {
		return types.StandardRoll{}, err
	}
	attrs := rec.Get("attributes")
	if !attrs.IsArray() {
		return types.StandardRoll{}, errors.New("roll attributes must be an array")
	}
	for _, a := range attrs.Array() {
		if err := checkSlot("attributes", a); err != nil {
			return types.StandardRoll{}, err
		}
	}

	var r types.StandardRoll
	if err := json.Unmarshal([]byte(rec.Raw), &r); err != nil {
		return types.StandardRoll{}, err
	}
	return r, checkStruct(r)
}

func decodeSkillPair(rec gjson.Result) (types.SkillPairRoll, error) {
	if !rec.IsObject() {
		return types.SkillPairRoll{}, errors.New("each roll must be an object")
	}
	if err := checkNumber(rec.Get("number")); err != nil {
		return types.SkillPairRoll{}, err
	}
	group, bonus := rec.Get("groupSkill"), rec.Get("setBonus")
	if !group.Exists() && !bonus.Exists() {
		return types.SkillPairRoll{}, errors.New("roll must carry groupSkill or setBonus")
	}
	if err := checkSlot("groupSkill", group); err != nil {
		return types.SkillPairRoll{}, err
	}
	if err := checkSlot("setBonus", bonus); err != nil {
		return types.SkillPairRoll{}, err
	}

	var r types.SkillPairRoll
	if err := json.Unmarshal([]byte(rec.Raw), &r); err != nil {
		return types.SkillPairRoll{}, err
	}
	return r, checkStruct(r)
}

func checkNumber(n gjson.Result) error {
	if n.Type != gjson.Number || n.Num != math.Trunc(n.Num) {
		return errors.New("roll number must be an integer")
	}
	return nil
}

// checkSlot accepts a string, null, or a missing value.
func checkSlot(field string, v gjson.Result) error {
	switch v.Type {
	case gjson.String, gjson.Null:
		return nil
	}
	return fmt.Errorf("%s values must be strings or null", field)
}

func checkStruct(v any) error {
	var c validation.Collector
	c.AddAll(validation.Struct("roll", v))
	return c.Err()
}

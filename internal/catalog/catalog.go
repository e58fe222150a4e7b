// Package catalog holds the static option lists the tracker records against:
// weapons, leveled attributes, skill-pair skills and focus types.
package catalog

import (
	"fmt"
	"strings"

	"github.com/hyperengineering/artian/internal/types"
)

// Weapons is the static catalog of selectable items, in display order.
var Weapons = []types.CategoryItem{
	{ID: "bow", Name: "Bow", Icon: "./resources/bow_icon.webp"},
	{ID: "charge-blade", Name: "Charge Blade", Icon: "./resources/charge_blade_icon.webp"},
	{ID: "dual-blades", Name: "Dual Blades", Icon: "./resources/dual_blades_icon.webp"},
	{ID: "greatsword", Name: "Great Sword", Icon: "./resources/great_sword_icon_light.webp"},
	{ID: "gunlance", Name: "Gunlance", Icon: "./resources/gunlance_icon.webp"},
	{ID: "hammer", Name: "Hammer", Icon: "./resources/hammer_icon.webp"},
	{ID: "heavy-bowgun", Name: "Heavy Bowgun", Icon: "./resources/heavy_bowgun_icon.webp"},
	{ID: "hunting-horn", Name: "Hunting Horn", Icon: "./resources/hunting_horn_icon.webp"},
	{ID: "insect-glaive", Name: "Insect Glaive", Icon: "./resources/insect_glaive_icon.webp"},
	{ID: "lance", Name: "Lance", Icon: "./resources/lance_icon.webp"},
	{ID: "light-bowgun", Name: "Light Bowgun", Icon: "./resources/light_bowgun_icon.webp"},
	{ID: "long-sword", Name: "Long Sword", Icon: "./resources/long_sword_icon.webp"},
	{ID: "switch-axe", Name: "Switch Axe", Icon: "./resources/switch_axe_icon.webp"},
	{ID: "sword-and-shield", Name: "Sword & Shield", Icon: "./resources/sword_and_shield_icon.webp"},
}

// Weapon looks up a weapon by id. Names are matched case-insensitively as a
// convenience for the shell.
func Weapon(idOrName string) (types.CategoryItem, bool) {
	for _, w := range Weapons {
		if w.ID == idOrName || strings.EqualFold(w.Name, idOrName) {
			return w, true
		}
	}
	return types.CategoryItem{}, false
}

// IsWeapon reports whether id names a catalog weapon.
func IsWeapon(id string) bool {
	for _, w := range Weapons {
		if w.ID == id {
			return true
		}
	}
	return false
}

// Level is an attribute reinforcement level.
type Level string

const (
	LevelI   Level = "I"
	LevelII  Level = "II"
	LevelIII Level = "III"
	LevelEX  Level = "EX"
)

// Levels lists every level in ascending order.
var Levels = []Level{LevelI, LevelII, LevelIII, LevelEX}

// Order returns the sort rank of l (I=1 .. EX=4), or 0 for an unknown level.
func (l Level) Order() int {
	for i, v := range Levels {
		if v == l {
			return i + 1
		}
	}
	return 0
}

// Label returns the display label of l.
func (l Level) Label() string {
	return "Level " + string(l)
}

// ParseLevel returns the level named by s.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// BaseAttribute is an attribute before a level is applied.
type BaseAttribute struct {
	ID     string
	Name   string
	Icon   string
	Levels []Level
}

// BaseAttributes lists the attribute kinds. Sharpness only rolls at I and EX.
var BaseAttributes = []BaseAttribute{
	{ID: "attack", Name: "Attack", Icon: "./src/resources/attack_icon.png", Levels: Levels},
	{ID: "affinity", Name: "Affinity", Icon: "./src/resources/affinity_icon.png", Levels: Levels},
	{ID: "element", Name: "Element", Icon: "./src/resources/element_icon.png", Levels: Levels},
	{ID: "sharpness", Name: "Sharpness", Icon: "./src/resources/sharpness_icon.webp", Levels: []Level{LevelI, LevelEX}},
}

// Attribute is a leveled attribute option for standard records.
type Attribute struct {
	ID       string `json:"id"`
	BaseID   string `json:"baseId"`
	Level    Level  `json:"level"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	CSSClass string `json:"cssClass"`
}

// Attributes is every leveled attribute option, grouped by base attribute.
var Attributes = buildAttributes()

func buildAttributes() []Attribute {
	var out []Attribute
	for _, base := range BaseAttributes {
		for _, level := range base.Levels {
			out = append(out, Attribute{
				ID:       LeveledID(base.ID, level),
				BaseID:   base.ID,
				Level:    level,
				Name:     fmt.Sprintf("%s %s", base.Name, level),
				Icon:     base.Icon,
				CSSClass: "level-" + string(level),
			})
		}
	}
	return out
}

// LeveledID joins a base attribute id and a level.
func LeveledID(baseID string, level Level) string {
	return baseID + "-" + string(level)
}

// LookupAttribute returns the attribute with the given leveled id.
func LookupAttribute(id string) (Attribute, bool) {
	for _, a := range Attributes {
		if a.ID == id {
			return a, true
		}
	}
	return Attribute{}, false
}

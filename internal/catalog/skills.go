package catalog

// SkillClass partitions skill-pair skills. A skill's class follows from
// which list it belongs to.
type SkillClass string

const (
	ClassGroup    SkillClass = "group"
	ClassSetBonus SkillClass = "set-bonus"
)

// Color is the rarity colour of a skill.
type Color string

const (
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
)

// CSSClass returns the style class for c.
func (c Color) CSSClass() string {
	return "gogma-" + string(c)
}

// Skill is a skill-pair option.
type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// GroupSkills are the skills that fill the groupSkill slot.
var GroupSkills = []Skill{
	{ID: "lords-soul", Name: "Lord's Soul", Color: Red},
	{ID: "lords-fury", Name: "Lord's Fury", Color: Yellow},
	{ID: "fortifying-pelt", Name: "Fortifying Pelt", Color: Green},
	{ID: "guardians-pulse", Name: "Guardian's Pulse", Color: Green},
}

// SetBonusSkills are the skills that fill the setBonus slot.
var SetBonusSkills = []Skill{
	{ID: "gore-magala", Name: "Gore Magala's Tyranny", Color: Red},
	{ID: "leviathan", Name: "Leviathan's Fury", Color: Red},
	{ID: "seregios", Name: "Seregios's Tenacity", Color: Red},
	{ID: "jin-dahaad", Name: "Jin Dahaad's Revolt", Color: Red},
	{ID: "fulgur-anjanath", Name: "Fulgur Anjanath's Will", Color: Red},
	{ID: "ebony-odogaron", Name: "Ebony Odogaron's Power", Color: Red},
	{ID: "omega-resonance", Name: "Omega Resonance", Color: Red},
	{ID: "dark-knight", Name: "Soul of the Dark Knight", Color: Red},
	{ID: "gogmapocalypse", Name: "Gogmapocalypse", Color: Red},

	{ID: "rey-dau", Name: "Rey Dau's Voltage", Color: Yellow},
	{ID: "nu-udra", Name: "Nu Udra's Mutiny", Color: Yellow},
	{ID: "guardian-arkveld", Name: "Guardian Arkveld's Vitality", Color: Yellow},
	{ID: "arkveld", Name: "Arkveld's Hunger", Color: Yellow},
	{ID: "zoh-shia", Name: "Zoh Shia's Pulse", Color: Yellow},
	{ID: "xu-wu", Name: "Xu Wu's Vigor", Color: Yellow},

	{ID: "uth-duna", Name: "Uth Duna's Cover", Color: Green},
	{ID: "doshaguma", Name: "Doshaguma's Might", Color: Green},
	{ID: "mizutsune", Name: "Mizutsune's Prowess", Color: Green},
}

// LookupSkill returns the skill with id and the class it belongs to.
func LookupSkill(id string) (Skill, SkillClass, bool) {
	for _, s := range GroupSkills {
		if s.ID == id {
			return s, ClassGroup, true
		}
	}
	for _, s := range SetBonusSkills {
		if s.ID == id {
			return s, ClassSetBonus, true
		}
	}
	return Skill{}, "", false
}

// FocusType is the skill-pair prerequisite chosen before recording.
type FocusType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FocusTypes lists the selectable focus types.
var FocusTypes = []FocusType{
	{ID: "attack", Name: "Attack Focus"},
	{ID: "affinity", Name: "Affinity Focus"},
	{ID: "element", Name: "Element Focus"},
}

// LookupFocus returns the focus type with id.
func LookupFocus(id string) (FocusType, bool) {
	for _, f := range FocusTypes {
		if f.ID == id {
			return f, true
		}
	}
	return FocusType{}, false
}

package migrate

import (
	"regexp"

	"github.com/hyperengineering/artian/internal/catalog"
)

var leveledID = regexp.MustCompile(`^(.+)-(I|II|III|EX)$`)

func isLeveled(id string) bool {
	return leveledID.MatchString(id)
}

// MigrateFieldID returns id with a level suffix, appending "-I" to bare ids.
func MigrateFieldID(id string) string {
	if id == "" || isLeveled(id) {
		return id
	}
	return catalog.LeveledID(id, catalog.LevelI)
}

// ParseFieldID splits id into its base id and level. Bare ids are level I.
func ParseFieldID(id string) (string, catalog.Level) {
	if m := leveledID.FindStringSubmatch(id); m != nil {
		return m[1], catalog.Level(m[2])
	}
	return id, catalog.LevelI
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hyperengineering/artian/internal/shape"
	"github.com/hyperengineering/artian/internal/store"
	"github.com/hyperengineering/artian/internal/types"
)

// executeCmd runs the root command against dbPath with captured output.
// It resets the strategy registry and flag variables for test isolation.
func executeCmd(t *testing.T, dbPath string, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	// Keep config files and .env in the working directory out of the test.
	t.Setenv("ARTIAN_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("ARTIAN_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("ARTIAN_LOG_LEVEL", "warn")

	// Register panics on duplicate; openApp registers again.
	shape.Reset()

	// Cobra parses into these variables, so stale values from previous tests
	// would leak if not reset.
	dbPathOverride = ""
	jsonOutput = false
	showMode = ""
	showDesc = false
	exportLegacy = false
	exportCompact = false
	exportOutput = ""

	fullArgs := append(append([]string{}, args...), "--db", dbPath)

	outBuf := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)

	rootCmd.SetOut(outBuf)
	rootCmd.SetErr(errBuf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(fullArgs)

	err = rootCmd.Execute()

	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetArgs(nil)

	return outBuf.String(), errBuf.String(), err
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "artian.db")
}

// seedDB writes raw key/values directly, bypassing migration.
func seedDB(t *testing.T, dbPath string, values map[string]string) {
	t.Helper()
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	for k, v := range values {
		if err := s.Write(context.Background(), k, v); err != nil {
			t.Fatalf("Write %s: %v", k, err)
		}
	}
}

func readEntry(t *testing.T, dbPath, key string) types.WeaponEntry {
	t.Helper()
	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()

	raw, err := s.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("Read %s: %v", key, err)
	}
	var e types.WeaponEntry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("Unmarshal %s: %v", raw, err)
	}
	return e
}

// --- Show ---

func TestShow_EmptyWeapon(t *testing.T) {
	stdout, _, err := executeCmd(t, tempDB(t), "", "show", "bow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Bow · standard rolls") {
		t.Errorf("stdout = %q, want heading for Bow", stdout)
	}
	if !strings.Contains(stdout, "No rolls recorded yet.") {
		t.Errorf("stdout = %q, want empty-table hint", stdout)
	}
}

func TestShow_UnknownWeapon(t *testing.T) {
	_, _, err := executeCmd(t, tempDB(t), "", "show", "spear")
	if err == nil || !strings.Contains(err.Error(), "unknown weapon") {
		t.Fatalf("err = %v, want unknown weapon", err)
	}
}

func TestShow_GogmaModeByName(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"DATA_VERSION": "3",
		"long-sword":   `{"artian":[],"gogma":[{"number":1,"groupSkill":"lords-soul","setBonus":null}]}`,
	})

	stdout, _, err := executeCmd(t, dbPath, "", "show", "Long", "Sword", "--mode", "gogma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Lord's Soul") {
		t.Errorf("stdout = %q, want Lord's Soul", stdout)
	}
	if !strings.Contains(stdout, "Group Skill") {
		t.Errorf("stdout = %q, want skill-pair header", stdout)
	}
}

// --- Shell ---

func TestShell_RecordsRolls(t *testing.T) {
	dbPath := tempDB(t)
	script := strings.Join([]string{
		"select bow",
		"pick attack-I",
		"pick affinity-I",
		"pick element-I",
		"pick sharpness-I",
		"pick attack-II",
		"pick affinity-III",
		"quit",
	}, "\n")

	// When: six fields are picked for the bow
	stdout, _, err := executeCmd(t, dbPath, script, "shell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Affinity III") {
		t.Errorf("stdout = %q, want the last pick rendered", stdout)
	}

	// Then: one complete roll and one started roll are stored
	e := readEntry(t, dbPath, "bow")
	if len(e.Artian) != 2 {
		t.Fatalf("Artian = %+v, want 2 rolls", e.Artian)
	}
	if len(e.Artian[0].Attributes) != 5 {
		t.Errorf("roll 1 attributes = %v, want 5", e.Artian[0].Attributes)
	}
	if got := e.Artian[1].Attributes; len(got) != 1 || got[0] != "affinity-III" {
		t.Errorf("roll 2 attributes = %v, want [affinity-III]", got)
	}
	if len(e.Gogma) != 0 {
		t.Errorf("Gogma = %v, want empty", e.Gogma)
	}
}

func TestShell_InputErrors(t *testing.T) {
	script := strings.Join([]string{
		"pick attack-I",
		"mode gogma",
		"select bow",
		"pick lords-soul",
		"focus attack",
		"pick attack-I",
		"bogus",
		"quit",
	}, "\n")

	stdout, _, err := executeCmd(t, tempDB(t), script, "shell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Select a weapon first",
		"Select a focus type first",
		"Unknown field for this mode",
		`unknown command "bogus"`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestShell_DeleteNeedsConfirmation(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"DATA_VERSION": "3",
		"bow":          `{"artian":[{"number":1,"attributes":["attack-I"]},{"number":2,"attributes":["element-I"]}],"gogma":[]}`,
	})

	stdout, _, err := executeCmd(t, dbPath, "select bow\ndel 1\ndel 1\nquit\n", "shell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Run del 1 again") {
		t.Errorf("stdout = %q, want confirmation prompt", stdout)
	}

	e := readEntry(t, dbPath, "bow")
	if len(e.Artian) != 1 || e.Artian[0].Number != 1 || e.Artian[0].Attributes[0] != "element-I" {
		t.Errorf("Artian = %+v, want the remaining roll renumbered to 1", e.Artian)
	}
}

func TestShell_EndOfInputExits(t *testing.T) {
	_, _, err := executeCmd(t, tempDB(t), "items\n", "shell")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- Import / Export ---

func TestImport_LegacyFromStdin(t *testing.T) {
	dbPath := tempDB(t)

	stdout, _, err := executeCmd(t, dbPath,
		`{"bow":[{"number":1,"attributes":["attack","affinity"]}]}`, "import")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Successfully imported data for 1 weapon(s) (legacy format).") {
		t.Errorf("stdout = %q, want success message", stdout)
	}

	e := readEntry(t, dbPath, "bow")
	if got := e.Artian[0].Attributes; len(got) != 2 || got[0] != "attack-I" || got[1] != "affinity-I" {
		t.Errorf("attributes = %v, want [attack-I affinity-I]", got)
	}
}

func TestImport_InvalidJSON(t *testing.T) {
	_, _, err := executeCmd(t, tempDB(t), `{"bow": [`, "import")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if err.Error() != "Failed to parse the JSON data. Please check your input format." {
		t.Errorf("err = %q", err.Error())
	}
}

func TestImport_FromFileSkipsExisting(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"DATA_VERSION": "3",
		"bow":          `{"artian":[{"number":1,"attributes":["element-II"]}],"gogma":[]}`,
	})
	file := filepath.Join(t.TempDir(), "export.json")
	if err := os.WriteFile(file, []byte(`{"version":3,"standard":{"bow":[{"number":1,"attributes":["attack-I"]}]}}`), 0644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := executeCmd(t, dbPath, "", "import", file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "No data was imported. 1 weapon(s) were skipped because they already had data.") {
		t.Errorf("stdout = %q, want skipped message", stdout)
	}
}

func TestExport_Stdout(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"DATA_VERSION": "3",
		"bow":          `{"artian":[{"number":1,"attributes":["attack-I"]}],"gogma":[]}`,
	})

	stdout, _, err := executeCmd(t, dbPath, "", "export", "--compact")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Version  int                        `json:"version"`
		Standard map[string]json.RawMessage `json:"standard"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if doc.Version != 3 {
		t.Errorf("version = %d, want 3", doc.Version)
	}
	if _, ok := doc.Standard["bow"]; !ok {
		t.Errorf("standard = %v, want bow", doc.Standard)
	}
}

func TestExport_LegacyToFile(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"DATA_VERSION": "3",
		"bow":          `{"artian":[{"number":1,"attributes":["attack-I"]}],"gogma":[]}`,
	})
	out := filepath.Join(t.TempDir(), "rolls.json")

	stdout, _, err := executeCmd(t, dbPath, "", "export", "--legacy", "-o", out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Exported") {
		t.Errorf("stdout = %q, want confirmation", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		t.Fatalf("export file is not JSON: %v", err)
	}
	if _, ok := flat["version"]; ok {
		t.Error("legacy export must not carry a version")
	}
	if _, ok := flat["bow"]; !ok {
		t.Errorf("legacy export = %s, want bow", data)
	}
}

// --- Migrate / Info ---

func TestMigrate_UpgradesLegacyEntries(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"bow":   `[{"number":1,"attributes":["attack","sharpness"]}]`,
		"lance": `[]`,
	})

	stdout, _, err := executeCmd(t, dbPath, "", "migrate", "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var report struct {
		From     int      `json:"from"`
		Ran      bool     `json:"ran"`
		Migrated []string `json:"migrated"`
		Removed  []string `json:"removed"`
	}
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if !report.Ran || report.From != 0 {
		t.Errorf("report = %+v, want a sweep from v0", report)
	}
	if len(report.Migrated) != 1 || report.Migrated[0] != "bow" {
		t.Errorf("migrated = %v, want [bow]", report.Migrated)
	}
	if len(report.Removed) != 1 || report.Removed[0] != "lance" {
		t.Errorf("removed = %v, want [lance]", report.Removed)
	}

	e := readEntry(t, dbPath, "bow")
	if got := e.Artian[0].Attributes; got[0] != "attack-I" || got[1] != "sharpness-I" {
		t.Errorf("attributes = %v, want leveled ids", got)
	}

	// A second run has nothing to do
	stdout, _, err = executeCmd(t, dbPath, "", "migrate")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Up to date") {
		t.Errorf("stdout = %q, want up to date", stdout)
	}
}

func TestInfo(t *testing.T) {
	dbPath := tempDB(t)
	seedDB(t, dbPath, map[string]string{
		"DATA_VERSION": "3",
		"bow":          `{"artian":[{"number":1,"attributes":["attack-I"]},{"number":2,"attributes":["element-I"]}],"gogma":[{"number":1,"groupSkill":"lords-soul","setBonus":null}]}`,
		"lance":        `{"artian":[{"number":1,"attributes":["attack-I"]}],"gogma":[]}`,
	})

	stdout, _, err := executeCmd(t, dbPath, "", "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Data version:  v3",
		"Schema:        v1",
		"standard:      3 roll(s) across 2 weapon(s)",
		"gogma:         1 roll(s) across 1 weapon(s)",
		"Last change:",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]string{
		"debug": "DEBUG",
		"warn":  "WARN",
		"error": "ERROR",
		"info":  "INFO",
		"":      "INFO",
	}
	for in, want := range tests {
		if got := parseLogLevel(in).String(); got != want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

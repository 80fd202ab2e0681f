package levels_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/hexpop/internal/games/hexpop/core"
	"github.com/vovakirdan/hexpop/internal/games/hexpop/levels"
)

func writeLevel(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

const yamlLevel = `id: "b-level"
name: "YAML"
size: {rows: 6, cols: 4}
colors: 3
grid: |
  R R G G
   B . G .
cells:
  - {row: 2, col: 2, color: yellow}
metadata:
  author: test
`

const tomlLevel = `id = "a-level"
colors = 2
grid = """
R G
 G R
"""

[size]
rows = 4
`

func TestBuiltinLevels(t *testing.T) {
	lvls, bad, err := levels.Builtin().Scan()
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	for _, fe := range bad {
		t.Errorf("builtin level failed to load: %v", fe)
	}
	if len(lvls) < 5 {
		t.Fatalf("expected at least 5 builtin levels, got %d", len(lvls))
	}
	for i := 1; i < len(lvls); i++ {
		if lvls[i-1].ID >= lvls[i].ID {
			t.Errorf("levels not sorted: %s >= %s", lvls[i-1].ID, lvls[i].ID)
		}
	}

	chandelier, err := levels.Builtin().LoadByID("04-chandelier")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}
	if chandelier.Cells[core.H(4, 4)] != core.ColorGreen {
		t.Error("explicit TOML cell missing from chandelier")
	}
}

func TestLoaderParsesBothFormats(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.yaml", yamlLevel)
	writeLevel(t, dir, "nested/a.toml", tomlLevel)
	writeLevel(t, dir, "notes.txt", "ignored")

	lvls, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("LoadAll() returned %d levels, expected 2", len(lvls))
	}

	a, b := lvls[0], lvls[1]
	if a.ID != "a-level" || b.ID != "b-level" {
		t.Fatalf("IDs = %q, %q", a.ID, b.ID)
	}

	if a.Rows != 4 || a.Cols != 2 || a.Colors != 2 || len(a.Cells) != 4 {
		t.Errorf("toml level = %dx%d colors=%d cells=%d", a.Rows, a.Cols, a.Colors, len(a.Cells))
	}
	if a.Name != "a-level" {
		t.Errorf("Name = %q, expected the id as fallback", a.Name)
	}
	if !strings.HasSuffix(a.FilePath, filepath.Join("nested", "a.toml")) {
		t.Errorf("FilePath = %q", a.FilePath)
	}

	if b.Rows != 6 || b.Cols != 4 || len(b.Cells) != 7 {
		t.Errorf("yaml level = %dx%d cells=%d, expected 6x4 with 7 cells", b.Rows, b.Cols, len(b.Cells))
	}
	if b.Cells[core.H(1, 0)] != core.ColorBlue || b.Cells[core.H(2, 2)] != core.ColorYellow {
		t.Error("yaml level cells decoded incorrectly")
	}
	if b.Metadata["author"] != "test" {
		t.Errorf("Metadata = %v", b.Metadata)
	}
}

func TestScanReportsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
		want string
	}{
		{"bad yaml", "x.yaml", "id: [", "yaml unmarshal"},
		{"unknown toml key", "x.toml", "id = \"x\"\nwidth = 3\ngrid = \"R\"\n", "unknown keys"},
		{"unknown color", "x.yaml", "id: x\ngrid: \"R Q\"\n", "unknown color"},
		{"floating piece", "x.yaml", "id: x\nsize: {rows: 4, cols: 3}\ngrid: |\n  R . .\n   . . .\n  . B .\n", "unsupported"},
		{"outside grid", "x.yaml", "id: x\nsize: {rows: 3, cols: 2}\ngrid: \"R R R\"\n", "outside"},
		{"danger row", "x.yaml", "id: x\nsize: {rows: 2, cols: 2}\ngrid: |\n  R R\n   R .\n", "danger row"},
		{"missing id", "x.yaml", "grid: \"R R\"\n", "missing id"},
		{"empty", "x.yaml", "id: x\nsize: {rows: 4, cols: 4}\n", "no pieces"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			writeLevel(t, dir, tc.file, tc.body)

			lvls, bad, err := levels.NewLoader(dir).Scan()
			if err != nil {
				t.Fatalf("Scan() failed: %v", err)
			}
			if len(lvls) != 0 {
				t.Errorf("Scan() accepted %d levels", len(lvls))
			}
			if len(bad) != 1 || !strings.Contains(bad[0].Error(), tc.want) {
				t.Errorf("Scan() errors = %v, expected one containing %q", bad, tc.want)
			}
		})
	}
}

func TestLoadByIDNotFound(t *testing.T) {
	_, err := levels.NewLoader(t.TempDir()).LoadByID("nope")
	if !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("LoadByID() error = %v, expected ErrNotFound", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := writeLevel(t, dir, "b.yml", yamlLevel)

	lvl, err := levels.LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if lvl.ID != "b-level" || lvl.FilePath != p {
		t.Errorf("LoadFile() = %q from %q", lvl.ID, lvl.FilePath)
	}

	if _, err := levels.LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFile() of a missing file should fail")
	}
}

func TestListIDs(t *testing.T) {
	ids, err := levels.Builtin().ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}
	if len(ids) == 0 || ids[0] != "01-warmup" {
		t.Errorf("ListIDs() = %v, expected 01-warmup first", ids)
	}
}

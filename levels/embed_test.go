package levels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEmbedded(t *testing.T) {
	for _, name := range []string{"sandbox.json", "box.json"} {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%s): %v", name, err)
			}
			if len(lvl.Layers) == 0 {
				t.Fatalf("expected at least one layer")
			}
			if !lvl.HasPhysics(0) {
				t.Fatalf("expected first layer to have physics")
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		data string
		want string
	}{
		{"bad_json", `{`, "unmarshal level"},
		{"zero_size", `{"width":0,"height":2}`, "invalid level dimensions"},
		{"short_layer", `{"width":2,"height":2,"layers":[[1,1,1]]}`, "layer 0"},
		{"spawn_outside", `{"width":2,"height":2,"layers":[[0,0,1,1]],"spawn_x":5}`, "spawn"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse([]byte(c.data))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestEntityProp(t *testing.T) {
	e := Entity{Props: map[string]interface{}{"speed": 2.5, "name": "x"}}
	if e.Prop("speed", 1) != 2.5 {
		t.Fatalf("expected speed 2.5")
	}
	if e.Prop("name", 1) != 1 || e.Prop("missing", 3) != 3 {
		t.Fatalf("expected defaults for non-numeric and missing props")
	}
}

func TestLoadWrapsErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "levels"), 0o755); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "levels", "box.json")
	if err := os.WriteFile(bad, []byte(`{"width":0}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(bad); err == nil || !strings.HasPrefix(err.Error(), "levels: load ") {
		t.Fatalf("expected a wrapped load error, got %v", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil || !strings.HasPrefix(err.Error(), "levels: read ") {
		t.Fatalf("expected a wrapped read error, got %v", err)
	}

	// A broken disk copy shadows the embedded level and must name the file.
	t.Chdir(dir)
	_, err := Load("box.json")
	if err == nil || !strings.HasPrefix(err.Error(), "levels: load ") || !strings.Contains(err.Error(), "box.json") {
		t.Fatalf("expected a wrapped disk load error, got %v", err)
	}

	if err := os.Remove(bad); err != nil {
		t.Fatal(err)
	}
	if _, err := Load("box.json"); err != nil {
		t.Fatalf("expected the embedded level without a disk copy, got %v", err)
	}
}

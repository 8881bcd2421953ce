package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lnzlayouts/pkg/config"
	"github.com/matzehuels/lnzlayouts/pkg/errors"
)

func parseScene(t *testing.T, kind config.Kind, args ...string) (config.Scene, error) {
	t.Helper()
	var f sceneFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd, kind)
	f.registerKind(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return f.load(cmd)
}

func TestSceneFlagsDefaults(t *testing.T) {
	scene, err := parseScene(t, config.KindSnap, "--items", "4", "--offset-x", "120")
	if err != nil {
		t.Fatal(err)
	}
	if scene.Kind != config.KindSnap || scene.Items != 4 || scene.Viewport.OffsetX != 120 {
		t.Errorf("scene = %+v", scene)
	}
	if scene.Viewport.Width != config.DefaultWidth {
		t.Errorf("width = %v, want default %v", scene.Viewport.Width, config.DefaultWidth)
	}
}

func TestSceneFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	data := "kind = \"stack\"\nitems = 7\n\n[viewport]\nwidth = 320\nheight = 480\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	scene, err := parseScene(t, config.KindCarousel, "-c", path, "--items", "3", "--height", "500")
	if err != nil {
		t.Fatal(err)
	}

	// Unset flags keep the file's values, set flags win.
	if scene.Kind != config.KindStack {
		t.Errorf("kind = %q, want stack from file", scene.Kind)
	}
	if scene.Viewport.Width != 320 {
		t.Errorf("width = %v, want 320 from file", scene.Viewport.Width)
	}
	if scene.Items != 3 || scene.Viewport.Height != 500 {
		t.Errorf("items %d height %v, want 3 and 500 from flags", scene.Items, scene.Viewport.Height)
	}
}

func TestSceneFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"unknown kind", []string{"--kind", "grid"}, errors.ErrCodeInvalidLayout},
		{"negative items", []string{"--items", "-1"}, errors.ErrCodeInvalidConfig},
		{"locked out of range", []string{"--items", "3", "--locked", "5"}, errors.ErrCodeInvalidIndex},
		{"missing file", []string{"-c", "/does/not/exist.toml"}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseScene(t, config.KindCarousel, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

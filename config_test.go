package legalize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigFileToOptionsOverridesDefaults(t *testing.T) {
	cf := ConfigFile{
		MaxDisplacementRows: 3,
		InitialPower:        "VSS",
		DiamondSearchDiv:    2,
	}
	opts := cf.ToOptions()

	if opts.MaxDisplacementRows != 3 {
		t.Errorf("MaxDisplacementRows = %d, want 3", opts.MaxDisplacementRows)
	}
	if opts.InitialPower != VSS {
		t.Errorf("InitialPower = %v, want VSS", opts.InitialPower)
	}
	if opts.DiamondSearchDiv != 2 {
		t.Errorf("DiamondSearchDiv = %d, want 2", opts.DiamondSearchDiv)
	}
	def := DefaultOptions()
	if opts.DiamondSearchHeight != def.DiamondSearchHeight {
		t.Errorf("unset DiamondSearchHeight should keep its default, got %d", opts.DiamondSearchHeight)
	}
}

func TestConfigFileToOptionsZeroPaddingIsExplicit(t *testing.T) {
	opts := ConfigFile{}.ToOptions()
	if opts.PaddingLeft != 0 || opts.PaddingRight != 0 {
		t.Error("padding fields should take the config file's value (including zero), not be defaulted")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.json")
	content := `{"max_displacement_rows": 7, "initial_power": "VDD"}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cf.MaxDisplacementRows != 7 {
		t.Errorf("MaxDisplacementRows = %d, want 7", cf.MaxDisplacementRows)
	}
	if cf.InitialPower != "VDD" {
		t.Errorf("InitialPower = %q, want VDD", cf.InitialPower)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(os.TempDir(), "no-such-config.json")); err == nil {
		t.Error("expected LoadConfigFile to fail for a missing file")
	}
}

func TestLoadConfigFileInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}

	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected LoadConfigFile to fail for malformed JSON")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestLoadTuningOverridesOnlyGivenKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := []byte("victory_approach: 12.5\nfinish_count: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	def := DefaultTuning()
	if got.VictoryApproach != 12.5 {
		t.Fatalf("VictoryApproach = %v, want 12.5", got.VictoryApproach)
	}
	if got.FinishCount != 30 {
		t.Fatalf("FinishCount = %d, want 30", got.FinishCount)
	}
	if got.Gravity != def.Gravity || got.SpawnInterval != def.SpawnInterval {
		t.Fatalf("unspecified keys changed: %+v", got)
	}
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("flap_impulse: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Fatal("expected error for positive flap impulse")
	}
}

func TestLoadTuningEmptyPath(t *testing.T) {
	got, err := LoadTuning("")
	if err != nil {
		t.Fatal(err)
	}
	if got != DefaultTuning() {
		t.Fatal("empty path should return defaults")
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/optim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Object != "sphere" {
		t.Errorf("expected object sphere, got %s", cfg.Object)
	}
	if cfg.Environment.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Grid() != optim.DefaultGrid {
		t.Errorf("expected default grid, got %+v", cfg.Grid())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid default config, got %v", err)
	}
}

func TestParamsFromPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Object = "golf"
	cfg.Projectile.Mass = 99

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Mass != 0.0459 || p.DragCoeff != 0.24 || p.Area != 0.00143 {
		t.Errorf("expected golf ball properties, got %+v", p)
	}
	if p.Speed != DefaultSpeed || p.Gravity != ballistics.DefaultGravity {
		t.Errorf("expected launch and environment defaults, got %+v", p)
	}
}

func TestParamsCustom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Object = CustomObject
	cfg.Projectile = ProjectileConfig{Mass: 1.2, DragCoeff: 0.3, Area: 0.02}

	p, err := cfg.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Mass != 1.2 || p.DragCoeff != 0.3 || p.Area != 0.02 {
		t.Errorf("expected custom properties, got %+v", p)
	}
}

func TestParamsUnknownObject(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Object = "bowling"

	_, err := cfg.Params()
	if !errors.Is(err, ErrUnknownObject) {
		t.Errorf("expected ErrUnknownObject, got %v", err)
	}
	if cfg.Validate() == nil {
		t.Error("expected validation error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Environment.Dt = 0 }},
		{"custom zero mass", func(c *Config) { c.Object = CustomObject; c.Projectile.Mass = 0 }},
		{"zero grid step", func(c *Config) { c.Search.Step = 0 }},
		{"inverted grid", func(c *Config) { c.Search.Start, c.Search.Stop = 80, 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.yaml")
	data := []byte("object: football\nlaunch:\n  speed: 30\n  wind: -2.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Object != "football" || cfg.Launch.Speed != 30 || cfg.Launch.Wind != -2.5 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Launch.Angle != DefaultAngle {
		t.Errorf("expected default angle to survive, got %f", cfg.Launch.Angle)
	}
	if cfg.Environment.Dt != ballistics.DefaultDt {
		t.Errorf("expected default dt, got %f", cfg.Environment.Dt)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Object = "cricket"
	cfg.Launch.Angle = 37.5
	cfg.Search.Workers = 3

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", cfg, loaded)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("launch: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestGetObject(t *testing.T) {
	obj, err := GetObject("cricket")
	if err != nil {
		t.Fatalf("expected preset, got %v", err)
	}
	if obj.Mass != 0.160 {
		t.Errorf("expected mass 0.160, got %f", obj.Mass)
	}

	if _, err := GetObject("nonexistent"); !errors.Is(err, ErrUnknownObject) {
		t.Errorf("expected ErrUnknownObject, got %v", err)
	}
}

func TestListObjects(t *testing.T) {
	names := ListObjects()
	expected := []string{"cricket", "football", "golf", "sphere"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, names)
		}
	}
}

func TestObjectApply(t *testing.T) {
	p := Objects["football"].Apply(ballistics.DefaultParams())
	if p.Area != 0.038 || p.Gravity != ballistics.DefaultGravity {
		t.Errorf("unexpected params: %+v", p)
	}
}

func TestFromParamsRoundTrip(t *testing.T) {
	p := ballistics.DefaultParams()
	p.Speed = 31
	p.Angle = 38
	p.Wind = -2
	p = Objects["golf"].Apply(p)

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, FromParams("golf", p, optim.PresetGrid, 4)); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	got, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if got != p {
		t.Errorf("expected %+v, got %+v", p, got)
	}
	if cfg.Grid() != optim.PresetGrid || cfg.Search.Workers != 4 {
		t.Errorf("unexpected search settings: %+v", cfg.Search)
	}
	if FromParams("", p, optim.DefaultGrid, 0).Object != CustomObject {
		t.Error("expected empty object to become custom")
	}
}

func TestCheckOverriddenParams(t *testing.T) {
	cfg := DefaultConfig()
	p, err := cfg.Params()
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Check(p); err != nil {
		t.Errorf("expected valid params, got %v", err)
	}

	p.Dt = 0
	if err := cfg.Check(p); !errors.Is(err, ballistics.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}

	p.Dt = ballistics.DefaultDt
	cfg.Search.Step = 0
	if cfg.Check(p) == nil {
		t.Error("expected grid error")
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/projsim/internal/ballistics"
	"github.com/san-kum/projsim/internal/optim"
)

const (
	DefaultObject = "sphere"
	CustomObject  = "custom"
	DefaultSpeed  = 20.0
	DefaultAngle  = 45.0
	DefaultData   = ".projsim"
)

type Config struct {
	Object      string            `yaml:"object"`
	Projectile  ProjectileConfig  `yaml:"projectile"`
	Launch      LaunchConfig      `yaml:"launch"`
	Environment EnvironmentConfig `yaml:"environment"`
	Search      SearchConfig      `yaml:"search"`
}

// ProjectileConfig is only read when Object is "custom".
type ProjectileConfig struct {
	Mass      float64 `yaml:"mass"`
	DragCoeff float64 `yaml:"drag_coeff"`
	Area      float64 `yaml:"area"`
}

type LaunchConfig struct {
	Speed float64 `yaml:"speed"`
	Angle float64 `yaml:"angle"`
	Wind  float64 `yaml:"wind"`
}

type EnvironmentConfig struct {
	AirDensity float64 `yaml:"air_density"`
	Gravity    float64 `yaml:"gravity"`
	Dt         float64 `yaml:"dt"`
	MaxSteps   int     `yaml:"max_steps"`
}

type SearchConfig struct {
	Start   float64 `yaml:"start"`
	Stop    float64 `yaml:"stop"`
	Step    float64 `yaml:"step"`
	Workers int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	sphere := Objects[DefaultObject]
	return &Config{
		Object: DefaultObject,
		Projectile: ProjectileConfig{
			Mass:      sphere.Mass,
			DragCoeff: sphere.DragCoeff,
			Area:      sphere.Area,
		},
		Launch: LaunchConfig{
			Speed: DefaultSpeed,
			Angle: DefaultAngle,
		},
		Environment: EnvironmentConfig{
			AirDensity: ballistics.DefaultAirDensity,
			Gravity:    ballistics.DefaultGravity,
			Dt:         ballistics.DefaultDt,
			MaxSteps:   ballistics.DefaultMaxSteps,
		},
		Search: SearchConfig{
			Start: optim.DefaultGrid.Start,
			Stop:  optim.DefaultGrid.Stop,
			Step:  optim.DefaultGrid.Step,
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params builds simulation parameters, taking mass, drag coefficient and
// area from the named object preset unless the object is "custom".
func (c *Config) Params() (ballistics.Params, error) {
	p := ballistics.Params{
		Speed:      c.Launch.Speed,
		Angle:      c.Launch.Angle,
		Wind:       c.Launch.Wind,
		Mass:       c.Projectile.Mass,
		DragCoeff:  c.Projectile.DragCoeff,
		Area:       c.Projectile.Area,
		AirDensity: c.Environment.AirDensity,
		Gravity:    c.Environment.Gravity,
		Dt:         c.Environment.Dt,
		MaxSteps:   c.Environment.MaxSteps,
	}

	if c.Object != "" && c.Object != CustomObject {
		obj, err := GetObject(c.Object)
		if err != nil {
			return p, err
		}
		p = obj.Apply(p)
	}
	return p, nil
}

func (c *Config) Grid() optim.Grid {
	return optim.Grid{Start: c.Search.Start, Stop: c.Search.Stop, Step: c.Search.Step}
}

func (c *Config) Validate() error {
	p, err := c.Params()
	if err != nil {
		return err
	}
	return c.Check(p)
}

// Check validates p, typically Params with flag overrides applied, together
// with the search grid.
func (c *Config) Check(p ballistics.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return c.Grid().Validate()
}

// FromParams builds a config that reproduces p. Object is stored as given;
// for presets the body fields are still written so the file is self-describing.
func FromParams(object string, p ballistics.Params, grid optim.Grid, workers int) *Config {
	if object == "" {
		object = CustomObject
	}
	return &Config{
		Object: object,
		Projectile: ProjectileConfig{
			Mass:      p.Mass,
			DragCoeff: p.DragCoeff,
			Area:      p.Area,
		},
		Launch: LaunchConfig{
			Speed: p.Speed,
			Angle: p.Angle,
			Wind:  p.Wind,
		},
		Environment: EnvironmentConfig{
			AirDensity: p.AirDensity,
			Gravity:    p.Gravity,
			Dt:         p.Dt,
			MaxSteps:   p.MaxSteps,
		},
		Search: SearchConfig{
			Start:   grid.Start,
			Stop:    grid.Stop,
			Step:    grid.Step,
			Workers: workers,
		},
	}
}

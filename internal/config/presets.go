package config

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/projsim/internal/ballistics"
)

var ErrUnknownObject = errors.New("config: unknown object")

// Object holds the aerodynamic properties of a launchable body.
type Object struct {
	Name      string  `yaml:"name" json:"name"`
	Mass      float64 `yaml:"mass" json:"mass"`
	DragCoeff float64 `yaml:"drag_coeff" json:"drag_coeff"`
	Area      float64 `yaml:"area" json:"area"`
}

// Apply copies the object's properties onto p.
func (o Object) Apply(p ballistics.Params) ballistics.Params {
	p.Mass = o.Mass
	p.DragCoeff = o.DragCoeff
	p.Area = o.Area
	return p
}

var Objects = map[string]Object{
	"sphere": {
		Name: "Sphere (10 cm)", Mass: 0.5, DragCoeff: 0.47, Area: math.Pi * 0.05 * 0.05,
	},
	"cricket": {
		Name: "Cricket Ball", Mass: 0.160, DragCoeff: 0.42, Area: 0.00396,
	},
	"golf": {
		Name: "Golf Ball", Mass: 0.0459, DragCoeff: 0.24, Area: 0.00143,
	},
	"football": {
		Name: "Football", Mass: 0.430, DragCoeff: 0.25, Area: 0.038,
	},
}

func GetObject(key string) (Object, error) {
	obj, ok := Objects[key]
	if !ok {
		return Object{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownObject, key, ListObjects())
	}
	return obj, nil
}

func ListObjects() []string {
	names := make([]string, 0, len(Objects))
	for name := range Objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

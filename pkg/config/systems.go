package config

import (
	"fmt"
	"sort"
)

// SystemTemplate is a named, ready-made set of bodies.
type SystemTemplate struct {
	Name        string
	Description string
	HomeBody    string
	Bodies      []BodyConfig
}

func classicBodies() []BodyConfig {
	return []BodyConfig{
		{Name: "S", OrbitRadius: 160, AngularSpeed: 0.03, Mass: 3000, Color: "#b4b4b4"},
		{Name: "K", OrbitRadius: 280, AngularSpeed: 0.025, Mass: 3500, Color: "#ffa064"},
		{Name: "T", OrbitRadius: 400, AngularSpeed: 0.02, Mass: 4000, Color: "#64c8ff"},
		{Name: "A", OrbitRadius: 600, AngularSpeed: 0.017, Mass: 3800, Color: "#ff6464"},
		{Name: "M", OrbitRadius: 1000, AngularSpeed: 0.01, Mass: 9000, Color: "#c8b48c"},
		{Name: "D", OrbitRadius: 1400, AngularSpeed: 0.008, Mass: 8000, Color: "#d2b478"},
		{Name: "O", OrbitRadius: 1800, AngularSpeed: 0.006, Mass: 7000, Color: "#96dcdc"},
		{Name: "I", OrbitRadius: 2200, AngularSpeed: 0.005, Mass: 6800, Color: "#6496ff"},
		{Name: "U", OrbitRadius: 2600, AngularSpeed: 0.004, Mass: 2000, Color: "#c8c8ff"},
	}
}

var systemTemplates = map[string]SystemTemplate{
	"classic": {
		Name:        "Classic",
		Description: "Nine bodies from 160 to 2600 units",
		HomeBody:    "T",
		Bodies:      classicBodies(),
	},
	"inner": {
		Name:        "Inner system",
		Description: "The four inner bodies only",
		HomeBody:    "T",
		Bodies:      classicBodies()[:4],
	},
	"binary": {
		Name:        "Binary",
		Description: "Two heavy bodies sharing one orbit on opposite sides",
		HomeBody:    "B1",
		Bodies: []BodyConfig{
			{Name: "B1", OrbitRadius: 500, AngularSpeed: 0.01, Mass: 12000, Color: "#ffd27f"},
			{Name: "B2", OrbitRadius: 500, AngularSpeed: 0.01, Mass: 12000, Color: "#7fbfff", InitialAngle: 3.141592653589793},
		},
	},
}

// GetSystemTemplate returns a copy of the named template, or nil.
func GetSystemTemplate(key string) *SystemTemplate {
	t, ok := systemTemplates[key]
	if !ok {
		return nil
	}
	t.Bodies = append([]BodyConfig(nil), t.Bodies...)
	return &t
}

// ListSystemTemplates returns the template keys in sorted order.
func ListSystemTemplates() []string {
	keys := make([]string, 0, len(systemTemplates))
	for k := range systemTemplates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplySystemTemplate replaces the bodies and home body of cfg.
func ApplySystemTemplate(cfg *GameConfig, key string) error {
	t := GetSystemTemplate(key)
	if t == nil {
		return fmt.Errorf("unknown system template %q", key)
	}
	cfg.Bodies = t.Bodies
	cfg.Probe.HomeBody = t.HomeBody
	return nil
}

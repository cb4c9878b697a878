package carbon

import (
	"fmt"
	"slices"
	"sort"
)

// Rotation is a cyclic sequence of annual above-ground biomass (Mg/ha).
type Rotation struct {
	Key     string
	Name    string
	Biomass []float64
	// Legume holds zero-based positions in Biomass planted to legumes.
	Legume []int
}

// Len is the rotation period in years.
func (r Rotation) Len() int { return len(r.Biomass) }

// Year returns the biomass and legume flag for a simulated year.
func (r Rotation) Year(y int) (float64, bool) {
	i := y % len(r.Biomass)
	return r.Biomass[i], slices.Contains(r.Legume, i)
}

const DefaultRotation = "tomato-wheat"

var rotations = map[string]Rotation{
	"tomato-wheat": {
		Name:    "Tomato - Durum wheat",
		Biomass: []float64{8, 14},
	},
	"tomato-wheat-maize": {
		Name:    "Tomato - Durum wheat - Grain maize",
		Biomass: []float64{8, 14, 22},
	},
	"tomato-wheat-silage": {
		Name:    "Tomato - Durum wheat - Silage maize",
		Biomass: []float64{8, 14, 20},
	},
	"tomato-wheat-soy": {
		Name:    "Tomato - Durum wheat - Soybean",
		Biomass: []float64{8, 14, 8},
		Legume:  []int{2},
	},
	"tomato-wheat-sorghum": {
		Name:    "Tomato - Durum wheat - Sorghum",
		Biomass: []float64{8, 14, 16},
	},
	"tomato-wheat-beet": {
		Name:    "Tomato - Durum wheat - Sugar beet",
		Biomass: []float64{8, 14, 18},
	},
	"tomato-wheat-alfalfa": {
		Name:    "Tomato - Durum wheat - Alfalfa (3y)",
		Biomass: []float64{8, 14, 12, 12, 12},
		Legume:  []int{2, 3, 4},
	},
}

// GetRotation looks a rotation up by key.
func GetRotation(key string) (Rotation, error) {
	r, ok := rotations[key]
	if !ok {
		return Rotation{}, fmt.Errorf("unknown rotation: %s", key)
	}
	r.Key = key
	return r, nil
}

// ListRotations returns the catalogue keys in sorted order.
func ListRotations() []string {
	keys := make([]string, 0, len(rotations))
	for k := range rotations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package scene

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownScene is returned when a preset name is not registered
var ErrUnknownScene = errors.New("scene: unknown scene")

// Preset describes a built-in scene
type Preset struct {
	ID                string `json:"id"`
	DisplayName       string `json:"displayName"`
	Description       string `json:"description"`
	DefaultIntegrator string `json:"defaultIntegrator"` // Estimator the scene is meant to showcase
	build             func() (*Scene, error)
}

// Presets maps scene IDs to built-in scene constructors. Populate it before
// rendering; lookups afterwards are read-only and safe for concurrent use.
type Presets struct {
	presets map[string]Preset
}

// NewPresets returns a catalog holding every built-in scene
func NewPresets() *Presets {
	p := &Presets{presets: make(map[string]Preset)}
	p.register(Preset{
		ID:                "cornell",
		DisplayName:       "Cornell Box",
		Description:       "Cornell box with two blocks, a glass and a mirror sphere, and a ceiling light",
		DefaultIntegrator: "path_mis",
		build:             NewCornellScene,
	})
	p.register(Preset{
		ID:                "furnace",
		DisplayName:       "White Furnace",
		Description:       "Unit-albedo diffuse sphere inside a uniformly emitting enclosure",
		DefaultIntegrator: "path_mats",
		build:             NewFurnaceScene,
	})
	p.register(Preset{
		ID:                "ao-plane",
		DisplayName:       "Ambient Occlusion",
		Description:       "Spheres resting on a ground plane, no lights",
		DefaultIntegrator: "ao",
		build:             NewAOScene,
	})
	p.register(Preset{
		ID:                "mis-lights",
		DisplayName:       "MIS Lights",
		Description:       "Glossy plates lit by spheres of different sizes and equal power",
		DefaultIntegrator: "path_mis",
		build:             NewMISScene,
	})
	p.register(Preset{
		ID:                "glass",
		DisplayName:       "Glass Sphere",
		Description:       "Glass sphere over a diffuse floor under a small area light",
		DefaultIntegrator: "whitted",
		build:             NewGlassScene,
	})
	p.register(Preset{
		ID:                "menger",
		DisplayName:       "Menger Sponge",
		Description:       "Fractal sponge on a floor under a square light",
		DefaultIntegrator: "path_mis",
		build:             NewMengerScene,
	})
	return p
}

func (p *Presets) register(preset Preset) {
	p.presets[preset.ID] = preset
}

// List returns every preset sorted by ID
func (p *Presets) List() []Preset {
	list := make([]Preset, 0, len(p.presets))
	for _, preset := range p.presets {
		list = append(list, preset)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}

// Lookup returns the preset registered under id
func (p *Presets) Lookup(id string) (Preset, error) {
	preset, ok := p.presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownScene, id)
	}
	return preset, nil
}

// Build constructs and preprocesses the preset registered under id
func (p *Presets) Build(id string) (*Scene, error) {
	preset, err := p.Lookup(id)
	if err != nil {
		return nil, err
	}

	s, err := preset.build()
	if err != nil {
		return nil, fmt.Errorf("building scene %q: %w", id, err)
	}
	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("preprocessing scene %q: %w", id, err)
	}
	return s, nil
}

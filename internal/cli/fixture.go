package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/quarryworks/lode/pkg/adapters/memory"
	"github.com/quarryworks/lode/pkg/domain"
)

// Fixture describes a simulated world in YAML: the initial excavation
// direction, an optional denylist override, and the blocks present.
//
//	direction: forward
//	denylist: [stone, dirt, bedrock]
//	blocks:
//	  - pos: [0, 0, -1]
//	    name: iron_ore
type Fixture struct {
	Direction string         `yaml:"direction"`
	Denylist  []string       `yaml:"denylist"`
	Blocks    []FixtureBlock `yaml:"blocks"`
}

// FixtureBlock is one cell of the fixture world.
type FixtureBlock struct {
	Pos  [3]int `yaml:"pos"`
	Name string `yaml:"name"`
}

// LoadFixture parses a world fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	if f.Direction == "" {
		f.Direction = string(domain.Forward)
	}
	for i, b := range f.Blocks {
		if b.Name == "" {
			return nil, fmt.Errorf("fixture block %d has no name", i)
		}
	}

	return &f, nil
}

// ParsedDirection returns the fixture's excavation direction.
func (f *Fixture) ParsedDirection() (domain.Direction, error) {
	return domain.ParseDirection(f.Direction)
}

// BuildDenylist returns the fixture's denylist, or the default when the
// fixture does not override it.
func (f *Fixture) BuildDenylist() (*domain.Denylist, error) {
	if f.Denylist == nil {
		return domain.DefaultDenylist(), nil
	}
	return domain.NewDenylist(f.Denylist)
}

// BuildRig materializes the fixture into a fresh simulated rig.
func (f *Fixture) BuildRig() *memory.SimRig {
	rig := memory.NewSimRig()
	for _, b := range f.Blocks {
		rig.SetBlock(memory.Vec3{X: b.Pos[0], Y: b.Pos[1], Z: b.Pos[2]}, b.Name)
	}
	return rig
}

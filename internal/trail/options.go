package trail

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultThreshold = 20.0
	DefaultCapacity  = 19
)

// Options tunes a Sampler.
type Options struct {
	// Threshold is the minimum distance from the last accepted position
	// that spawns a wave. Distances equal to it are accepted.
	Threshold float64 `yaml:"threshold"`
	// Capacity bounds the number of retained waves.
	Capacity int     `yaml:"capacity"`
	Palette  []Color `yaml:"palette"`
	// Origin seeds the last accepted position.
	Origin Point `yaml:"origin"`
}

func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
		Capacity:  DefaultCapacity,
		Palette:   RainbowPalette(),
	}
}

// LoadOptions reads a YAML tuning file. Keys missing from the file keep
// their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("trail: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("trail: parse %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("trail: %s: %w", path, err)
	}
	return opts, nil
}

func (o Options) Validate() error {
	switch {
	case o.Threshold <= 0:
		return fmt.Errorf("threshold must be positive, got %g", o.Threshold)
	case o.Capacity < 1:
		return fmt.Errorf("capacity must be at least 1, got %d", o.Capacity)
	case len(o.Palette) == 0:
		return errors.New("palette must not be empty")
	}
	return nil
}

package track

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/coaster"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig indicates a configuration value out of range.
var ErrInvalidConfig = errors.New("invalid track configuration")

// Config holds the tunable constants of tracks, previews and riders.
type Config struct {
	Resolution        int     `yaml:"resolution"`          // length table resolution of the track
	PreviewResolution int     `yaml:"preview_resolution"`  // length table resolution of a single piece
	SamplesPerPiece   int     `yaml:"samples_per_piece"`   // simulation samples per piece for mesh and supports
	PreviewSamples    int     `yaml:"preview_samples"`     // simulation samples of the preview piece
	MaxPieces         int     `yaml:"max_pieces"`          // upper limit for the piece count
	CrossTieFrequency int     `yaml:"cross_tie_frequency"` // a cross tie every n-th sample
	SupportFrequency  int     `yaml:"support_frequency"`   // a support candidate every n-th sample
	SupportFloor      float64 `yaml:"support_floor"`       // height supports reach down to
	SupportDrop       float64 `yaml:"support_drop"`        // distance of a support's top below the track
	TrackWidth        float64 `yaml:"track_width"`         // ribbon width for support collision
	Tension           float64 `yaml:"tension"`             // tension of closing pieces

	Ride    RideConfig              `yaml:"ride"`
	Presets map[string]PresetConfig `yaml:"presets"`
}

// RideConfig parameterizes a Rider. Speeds are in units of the normalized
// track distance per time unit for a one-piece track; they are divided by
// the piece count.
type RideConfig struct {
	TopSpeed        float64 `yaml:"top_speed"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxAcceleration float64 `yaml:"max_acceleration"` // per step
	MaxDeceleration float64 `yaml:"max_deceleration"` // per step, positive
}

// PresetConfig overrides parts of a piece preset.
type PresetConfig struct {
	ControlPoints [][3]float64 `yaml:"control_points,omitempty"`
	RollTarget    *float64     `yaml:"roll_target,omitempty"`
	Tension       *float64     `yaml:"tension,omitempty"`
}

// DefaultConfig returns the configuration of the interactive editor.
func DefaultConfig() Config {
	return Config{
		Resolution:        1000,
		PreviewResolution: 100,
		SamplesPerPiece:   30,
		PreviewSamples:    25,
		MaxPieces:         100,
		CrossTieFrequency: 3,
		SupportFrequency:  6,
		SupportFloor:      -3.0,
		SupportDrop:       0.3,
		TrackWidth:        1.0,
		Tension:           2.0,
		Ride: RideConfig{
			TopSpeed:        0.5,
			MinSpeed:        0.2,
			MaxAcceleration: 0.00005,
			MaxDeceleration: 0.00003,
		},
	}
}

// LoadConfig decodes a YAML document over the defaults. Unknown keys are
// rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfigFile is LoadConfig for a file path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return DefaultConfig(), err
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks ranges and preset overrides.
func (cfg Config) Validate() error {
	switch {
	case cfg.Resolution < 2:
		return fmt.Errorf("%w: resolution %d < 2", ErrInvalidConfig, cfg.Resolution)
	case cfg.PreviewResolution < 2:
		return fmt.Errorf("%w: preview resolution %d < 2", ErrInvalidConfig, cfg.PreviewResolution)
	case cfg.SamplesPerPiece < 2:
		return fmt.Errorf("%w: samples per piece %d < 2", ErrInvalidConfig, cfg.SamplesPerPiece)
	case cfg.PreviewSamples < 2:
		return fmt.Errorf("%w: preview samples %d < 2", ErrInvalidConfig, cfg.PreviewSamples)
	case cfg.MaxPieces < 1:
		return fmt.Errorf("%w: max pieces %d < 1", ErrInvalidConfig, cfg.MaxPieces)
	case cfg.CrossTieFrequency < 1 || cfg.SupportFrequency < 1:
		return fmt.Errorf("%w: frequencies must be positive", ErrInvalidConfig)
	case cfg.Tension <= 0:
		return fmt.Errorf("%w: tension %g must be positive", ErrInvalidConfig, cfg.Tension)
	case cfg.TrackWidth <= 0:
		return fmt.Errorf("%w: track width %g", ErrInvalidConfig, cfg.TrackWidth)
	case cfg.Ride.MinSpeed < 0 || cfg.Ride.TopSpeed < cfg.Ride.MinSpeed:
		return fmt.Errorf("%w: ride speeds [%g,%g]", ErrInvalidConfig, cfg.Ride.MinSpeed, cfg.Ride.TopSpeed)
	}
	for name, p := range cfg.Presets {
		tag, err := ParseTag(name)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		if _, ok := defaultPresets[tag]; !ok {
			return fmt.Errorf("%w: %s has no preset geometry", ErrInvalidConfig, tag)
		}
		if p.Tension != nil && *p.Tension <= 0 {
			return fmt.Errorf("%w: preset %s tension %g must be positive",
				ErrInvalidConfig, name, *p.Tension)
		}
		if p.ControlPoints != nil && len(p.ControlPoints) != 4 {
			return fmt.Errorf("%w: preset %s needs 4 control points, has %d",
				ErrInvalidConfig, name, len(p.ControlPoints))
		}
	}
	return nil
}

// Preset returns the preset for tag, with configured overrides applied.
// Tags without preset geometry return false.
func (cfg Config) Preset(tag Tag) (Preset, bool) {
	preset, ok := defaultPresets[tag]
	if !ok {
		return Preset{}, false
	}
	override, ok := cfg.Presets[tag.String()]
	if !ok {
		return preset, true
	}
	if len(override.ControlPoints) == 4 {
		for i, p := range override.ControlPoints {
			preset.ControlPoints[i] = coaster.V(p[0], p[1], p[2])
		}
	}
	if override.RollTarget != nil {
		preset.RollTarget = *override.RollTarget
	}
	if override.Tension != nil {
		preset.Tension = *override.Tension
	}
	return preset, true
}

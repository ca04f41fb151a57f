package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay constant. Distances are in design units
// (BaseWidth x BaseHeight) and velocities are per 60 fps frame.
type Tuning struct {
	// Bird
	BirdXFraction float64 `yaml:"bird_x_fraction"` // Horizontal position as a fraction of canvas width
	BirdRadius    float64 `yaml:"bird_radius"`
	Gravity       float64 `yaml:"gravity"`
	FlapImpulse   float64 `yaml:"flap_impulse"` // Negative: up
	FrameInterval int     `yaml:"frame_interval_ms"`

	// Obstacles
	PipeWidth      float64 `yaml:"pipe_width"`
	PipeSpeed      float64 `yaml:"pipe_speed"`
	GapHeight      float64 `yaml:"gap_height"`
	GapMargin      float64 `yaml:"gap_margin"`
	CullMargin     float64 `yaml:"cull_margin"`
	SpawnInterval  int     `yaml:"spawn_interval_ms"`
	MilestoneEvery int     `yaml:"milestone_every"`
	FinishCount    int     `yaml:"finish_count"`

	// Difficulty
	PointsPerLevel    int     `yaml:"points_per_level"`
	MaxLevel          int     `yaml:"max_level"`
	GravityPerLevel   float64 `yaml:"gravity_per_level"`
	GravityCap        float64 `yaml:"gravity_cap"`
	SpeedPerLevel     float64 `yaml:"speed_per_level"`
	SpeedCap          float64 `yaml:"speed_cap"`
	GapShrinkPerLevel float64 `yaml:"gap_shrink_per_level"`
	GapMinFraction    float64 `yaml:"gap_min_fraction"`
	SpawnIntervalStep int     `yaml:"spawn_interval_step_ms"`
	MinSpawnInterval  int     `yaml:"min_spawn_interval_ms"`

	// Victory flyout
	VictoryApproach    float64 `yaml:"victory_approach"` // Distance ahead of the finish obstacle that starts the flyout
	FlyoutSpeed        float64 `yaml:"flyout_speed"`
	FlyoutGravityScale float64 `yaml:"flyout_gravity_scale"`
	FlyoutFlapScale    float64 `yaml:"flyout_flap_scale"`
	VictoryDelay       int     `yaml:"victory_delay_ms"`

	// Frame timing
	MaxFrameDelta int `yaml:"max_frame_delta_ms"`

	// Audio
	AmbientFadeDistance float64 `yaml:"ambient_fade_distance"`
	WarpDistance        float64 `yaml:"warp_distance"`
	MaxAmbientVolume    float64 `yaml:"max_ambient_volume"`
	AmbientFadeTau      float64 `yaml:"ambient_fade_tau"` // Seconds
	SilenceThreshold    float64 `yaml:"silence_threshold"`
}

// DefaultTuning returns the stock gameplay constants.
func DefaultTuning() Tuning {
	return Tuning{
		BirdXFraction: 0.25,
		BirdRadius:    14,
		Gravity:       0.42,
		FlapImpulse:   -7.6,
		FrameInterval: 100,

		PipeWidth:      64,
		PipeSpeed:      2.6,
		GapHeight:      180,
		GapMargin:      60,
		CullMargin:     8,
		SpawnInterval:  1600,
		MilestoneEvery: 10,
		FinishCount:    90,

		PointsPerLevel:    10,
		MaxLevel:          8,
		GravityPerLevel:   0.04,
		GravityCap:        1.3,
		SpeedPerLevel:     0.06,
		SpeedCap:          1.45,
		GapShrinkPerLevel: 0.04,
		GapMinFraction:    0.7,
		SpawnIntervalStep: 70,
		MinSpawnInterval:  1050,

		VictoryApproach:    40,
		FlyoutSpeed:        3.2,
		FlyoutGravityScale: 0.6,
		FlyoutFlapScale:    0.7,
		VictoryDelay:       1200,

		MaxFrameDelta: 50,

		AmbientFadeDistance: 320,
		WarpDistance:        36,
		MaxAmbientVolume:    0.6,
		AmbientFadeTau:      0.25,
		SilenceThreshold:    0.002,
	}
}

// Duration helpers for the millisecond fields.

func (t Tuning) SpawnIntervalDuration() time.Duration {
	return time.Duration(t.SpawnInterval) * time.Millisecond
}

func (t Tuning) FrameIntervalDuration() time.Duration {
	return time.Duration(t.FrameInterval) * time.Millisecond
}

func (t Tuning) VictoryDelayDuration() time.Duration {
	return time.Duration(t.VictoryDelay) * time.Millisecond
}

func (t Tuning) MaxFrameDeltaDuration() time.Duration {
	return time.Duration(t.MaxFrameDelta) * time.Millisecond
}

// Validate rejects tunings that would make the game unplayable or break
// the difficulty invariants.
func (t Tuning) Validate() error {
	var errs []error
	if t.BirdXFraction <= 0 || t.BirdXFraction >= 1 {
		errs = append(errs, fmt.Errorf("bird_x_fraction must be in (0,1), got %v", t.BirdXFraction))
	}
	if t.BirdRadius <= 0 || t.PipeWidth <= 0 || t.PipeSpeed <= 0 || t.GapHeight <= 0 {
		errs = append(errs, errors.New("bird_radius, pipe_width, pipe_speed and gap_height must be positive"))
	}
	if t.Gravity <= 0 || t.FlapImpulse >= 0 {
		errs = append(errs, errors.New("gravity must be positive and flap_impulse negative"))
	}
	if t.FrameInterval <= 0 || t.MaxFrameDelta <= 0 {
		errs = append(errs, errors.New("frame_interval_ms and max_frame_delta_ms must be positive"))
	}
	if t.MilestoneEvery <= 0 || t.PointsPerLevel <= 0 {
		errs = append(errs, errors.New("milestone_every and points_per_level must be positive"))
	}
	if t.FinishCount <= 0 {
		errs = append(errs, fmt.Errorf("finish_count must be positive, got %d", t.FinishCount))
	}
	if t.MaxLevel < 0 {
		errs = append(errs, fmt.Errorf("max_level must not be negative, got %d", t.MaxLevel))
	}
	if t.GravityPerLevel < 0 || t.SpeedPerLevel < 0 || t.GapShrinkPerLevel < 0 || t.SpawnIntervalStep < 0 {
		errs = append(errs, errors.New("per-level coefficients must not be negative"))
	}
	if t.GravityCap < 1 || t.SpeedCap < 1 {
		errs = append(errs, errors.New("gravity_cap and speed_cap must be at least 1"))
	}
	if t.GapMinFraction <= 0 || t.GapMinFraction > 1 {
		errs = append(errs, fmt.Errorf("gap_min_fraction must be in (0,1], got %v", t.GapMinFraction))
	}
	if t.MinSpawnInterval <= 0 || t.MinSpawnInterval > t.SpawnInterval {
		errs = append(errs, errors.New("min_spawn_interval_ms must be positive and not above spawn_interval_ms"))
	}
	if t.VictoryApproach < 0 || t.FlyoutSpeed <= 0 {
		errs = append(errs, errors.New("victory_approach must not be negative and flyout_speed must be positive"))
	}
	if t.MaxAmbientVolume < 0 || t.MaxAmbientVolume > 1 {
		errs = append(errs, fmt.Errorf("max_ambient_volume must be in [0,1], got %v", t.MaxAmbientVolume))
	}
	if t.AmbientFadeDistance <= 0 || t.WarpDistance < 0 {
		errs = append(errs, errors.New("ambient_fade_distance must be positive and warp_distance not negative"))
	}
	return errors.Join(errs...)
}

// LoadTuning reads a YAML file on top of DefaultTuning. Keys missing from
// the file keep their default value. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid tuning %s: %w", path, err)
	}
	return t, nil
}

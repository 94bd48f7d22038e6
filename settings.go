package lumen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the configuration surface of the lighting module.
type Settings struct {
	// GropeLight enables the short-range player-vision light.
	GropeLight bool `yaml:"grope_light"`
	// ExtinguishFlames puts out unenchanted light sources underwater.
	ExtinguishFlames bool `yaml:"extinguish_flames"`
	// AlterTorchlight lets the carried-light simulator drive the player torch.
	AlterTorchlight bool `yaml:"alter_torchlight"`

	PlayerTorchLightScale    float32 `yaml:"player_torch_light_scale"`
	AmbientLitInteriors      bool    `yaml:"ambient_lit_interiors"`
	NightAmbientLightScale   float32 `yaml:"night_ambient_light_scale"`
	DungeonAmbientLightScale float32 `yaml:"dungeon_ambient_light_scale"`

	// LightDiesMessage is shown when fuel runs out; %it is the item name.
	LightDiesMessage string `yaml:"light_dies_message"`
	// LowFuelMessage is shown once per item when fuel runs low; %it is the
	// item name and %t the remaining burn time.
	LowFuelMessage string `yaml:"low_fuel_message"`
}

func DefaultSettings() *Settings {
	return &Settings{
		GropeLight:               true,
		ExtinguishFlames:         true,
		AlterTorchlight:          true,
		PlayerTorchLightScale:    1,
		NightAmbientLightScale:   1,
		DungeonAmbientLightScale: 1,
		LightDiesMessage:         "%it burns out.",
		LowFuelMessage:           "%it is guttering, about %t left.",
	}
}

// settingsFile mirrors Settings with pointers so absent keys keep defaults.
type settingsFile struct {
	GropeLight               *bool    `yaml:"grope_light"`
	ExtinguishFlames         *bool    `yaml:"extinguish_flames"`
	AlterTorchlight          *bool    `yaml:"alter_torchlight"`
	PlayerTorchLightScale    *float32 `yaml:"player_torch_light_scale"`
	AmbientLitInteriors      *bool    `yaml:"ambient_lit_interiors"`
	NightAmbientLightScale   *float32 `yaml:"night_ambient_light_scale"`
	DungeonAmbientLightScale *float32 `yaml:"dungeon_ambient_light_scale"`
	LightDiesMessage         *string  `yaml:"light_dies_message"`
	LowFuelMessage           *string  `yaml:"low_fuel_message"`
}

// ParseSettings decodes YAML on top of DefaultSettings. Older configs only
// carried extinguish_flames and used it for torch simulation too; when
// alter_torchlight is absent it inherits that value and a warning is logged.
func ParseSettings(data []byte, logger Logger) (*Settings, error) {
	if logger == nil {
		logger = NewNopLogger()
	}

	var file settingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	s := DefaultSettings()
	setIf(&s.GropeLight, file.GropeLight)
	setIf(&s.ExtinguishFlames, file.ExtinguishFlames)
	setIf(&s.PlayerTorchLightScale, file.PlayerTorchLightScale)
	setIf(&s.AmbientLitInteriors, file.AmbientLitInteriors)
	setIf(&s.NightAmbientLightScale, file.NightAmbientLightScale)
	setIf(&s.DungeonAmbientLightScale, file.DungeonAmbientLightScale)
	setIf(&s.LightDiesMessage, file.LightDiesMessage)
	setIf(&s.LowFuelMessage, file.LowFuelMessage)

	if file.AlterTorchlight != nil {
		s.AlterTorchlight = *file.AlterTorchlight
	} else if file.ExtinguishFlames != nil {
		s.AlterTorchlight = *file.ExtinguishFlames
		logger.Warnf("alter_torchlight not set, inheriting extinguish_flames=%v", s.AlterTorchlight)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func LoadSettings(path string, logger Logger) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	s, err := ParseSettings(data, logger)
	if err != nil {
		return nil, fmt.Errorf("settings %s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.PlayerTorchLightScale < 0 {
		return fmt.Errorf("player_torch_light_scale must not be negative, got %v", s.PlayerTorchLightScale)
	}
	if s.NightAmbientLightScale < 0 {
		return fmt.Errorf("night_ambient_light_scale must not be negative, got %v", s.NightAmbientLightScale)
	}
	if s.DungeonAmbientLightScale < 0 {
		return fmt.Errorf("dungeon_ambient_light_scale must not be negative, got %v", s.DungeonAmbientLightScale)
	}
	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// internal/config/config.go
package config

import (
	"bytes"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/donabrams/advent-of-code-2015/core/floor"
	"github.com/donabrams/advent-of-code-2015/core/lights"
	"github.com/donabrams/advent-of-code-2015/internal/logger"
)

// Config is the YAML document:
//
//	floor:
//	  up: "("
//	  down: ")"
//	lights:
//	  size: 1000
//	  rule: binary
//	logging:
//	  level: info
//	  encoding: console
type Config struct {
	Floor   FloorConfig   `yaml:"floor"`
	Lights  LightsConfig  `yaml:"lights"`
	Logging logger.Config `yaml:"logging"`
}

// FloorConfig holds the two single-character symbols.
type FloorConfig struct {
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
}

type LightsConfig struct {
	Size int    `yaml:"size"`
	Rule string `yaml:"rule"` // binary or brightness
}

func Default() Config {
	return Config{
		Floor: FloorConfig{
			Up:   string(floor.DefaultAlphabet.Up),
			Down: string(floor.DefaultAlphabet.Down),
		},
		Lights: LightsConfig{
			Size: lights.DefaultSize,
			Rule: lights.Binary.Name(),
		},
		Logging: logger.DefaultConfig(),
	}
}

// Alphabet converts the configured symbols into a floor.Alphabet.
func (c FloorConfig) Alphabet() (floor.Alphabet, error) {
	up, err := singleRune("floor.up", c.Up)
	if err != nil {
		return floor.Alphabet{}, err
	}
	down, err := singleRune("floor.down", c.Down)
	if err != nil {
		return floor.Alphabet{}, err
	}
	a := floor.Alphabet{Up: up, Down: down}
	if err := a.Validate(); err != nil {
		return floor.Alphabet{}, errors.Wrap(err, "floor")
	}
	return a, nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, errors.Errorf("%s: want exactly one character, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// GridRule resolves the configured grid rule.
func (c LightsConfig) GridRule() (lights.Rule, error) {
	r, err := lights.RuleByName(c.Rule)
	if err != nil {
		return nil, errors.Wrap(err, "lights.rule")
	}
	return r, nil
}

func (c Config) Validate() error {
	if _, err := c.Floor.Alphabet(); err != nil {
		return err
	}
	if c.Lights.Size <= 0 || c.Lights.Size > lights.MaxSize {
		return errors.Errorf("lights.size must be in 1..%d, got %d", lights.MaxSize, c.Lights.Size)
	}
	if _, err := c.Lights.GridRule(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.Wrap(err, "logging")
	}
	return nil
}

// Parse decodes data over Default() and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return cfg, nil
}

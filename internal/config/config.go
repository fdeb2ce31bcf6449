package config

import (
	"encoding/json"
	"os"

	"github.com/fcurrie/hub75/internal/types"
)

// Config is the top-level on-disk configuration: panel geometry and
// wiring, plus the default animation behavior a command-line tool
// applies when none is given on the flag line.
type Config struct {
	Engine    types.EngineConfig    `json:"engine"`
	Animation types.AnimationConfig `json:"animation"`
}

// LoadConfig reads and decodes a JSON config file at path.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns a 64x32 4-bit panel wired per the Adafruit RGB
// Matrix Bonnet layout on a Raspberry Pi 5's gpiochip0, the same
// default pinout cmd/hub75-gpio falls back to without a config file.
func DefaultConfig() *Config {
	const base = 512
	return &Config{
		Engine: types.EngineConfig{
			Width:      64,
			Height:     32,
			Bits:       4,
			Brightness: 180,
			BaseTickUS: 100,
			Pinout: types.PinoutConfig{
				Chip: "gpiochip0",
				R1:   5 + base, G1: 13 + base, B1: 6 + base,
				R2: 12 + base, G2: 16 + base, B2: 23 + base,
				CLK: 17 + base, LAT: 21 + base, OE: 4 + base,
				A: 22 + base, B: 26 + base, C: 27 + base,
				D: 20 + base, E: 24 + base,
			},
		},
		Animation: types.AnimationConfig{
			Effect:     "none",
			DurationMS: 1000,
		},
	}
}

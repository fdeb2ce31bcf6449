package types

import (
	"github.com/fcurrie/hub75/pkg/gpio"
	"github.com/fcurrie/hub75/pkg/hub75"
)

// PinoutConfig names the fourteen HUB75 lines by GPIO chip and offset,
// the JSON-serializable counterpart to hub75.GPIOCdevPinout. D and E
// are optional: a negative value means a 3-bit address bus.
type PinoutConfig struct {
	Chip string `json:"chip"`

	R1 int `json:"r1"`
	G1 int `json:"g1"`
	B1 int `json:"b1"`
	R2 int `json:"r2"`
	G2 int `json:"g2"`
	B2 int `json:"b2"`

	CLK int `json:"clk"`
	LAT int `json:"lat"`
	OE  int `json:"oe"`

	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
	D int `json:"d"`
	E int `json:"e"`
}

// ToGPIOCdev converts a loaded config into the pinout hub75.BuildPinGroup
// expects for the go-gpiocdev backend.
func (p PinoutConfig) ToGPIOCdev() hub75.GPIOCdevPinout {
	return hub75.GPIOCdevPinout{
		Chip: p.Chip,
		R1:   p.R1, G1: p.G1, B1: p.B1,
		R2: p.R2, G2: p.G2, B2: p.B2,
		CLK: p.CLK, LAT: p.LAT, OE: p.OE,
		A: p.A, B: p.B, C: p.C, D: p.D, E: p.E,
	}
}

// ToSysfs converts a loaded config into the pinout gpio.BuildPinGroup
// expects for the sysfs fallback backend. Chip is ignored: sysfs GPIO
// numbers are global, not scoped to a chip.
func (p PinoutConfig) ToSysfs() gpio.Pinout {
	return gpio.Pinout{
		R1: p.R1, G1: p.G1, B1: p.B1,
		R2: p.R2, G2: p.G2, B2: p.B2,
		CLK: p.CLK, LAT: p.LAT, OE: p.OE,
		A: p.A, B: p.B, C: p.C, D: p.D, E: p.E,
	}
}

// EngineConfig is the panel's physical and timing configuration: the
// runtime stand-ins for the compile-time width/height/bit-depth
// parameters a generics-free Engine takes as constructor arguments
// instead, plus the knobs Engine exposes after construction.
type EngineConfig struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Bits       int          `json:"bits"`
	Brightness int          `json:"brightness"`
	BaseTickUS int          `json:"base_tick_us"`
	Pinout     PinoutConfig `json:"pinout"`
}

// AnimationConfig selects the default transition effect and duration a
// command-line tool applies when cycling through a set of frames.
type AnimationConfig struct {
	Effect     string `json:"effect"` // "none", "slide", "fade", "wipe"
	DurationMS int    `json:"duration_ms"`
}

package hub75

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOCdevPin adapts a single github.com/warthog618/go-gpiocdev line to
// the OutputPin capability, generalized from one fixed pin map into a
// capability any PinGroup can be built from.
type GPIOCdevPin struct {
	line *gpiocdev.Line
	name string
}

// RequestGPIOCdevPin requests offset on chipName as an output, driven
// initially low.
func RequestGPIOCdevPin(chipName string, offset int, name string) (*GPIOCdevPin, error) {
	line, err := gpiocdev.RequestLine(chipName, offset, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("hub75: request line %s (chip %s offset %d): %w", name, chipName, offset, err)
	}
	return &GPIOCdevPin{line: line, name: name}, nil
}

// SetHigh drives the line to logic 1.
func (p *GPIOCdevPin) SetHigh() error {
	if err := p.line.SetValue(1); err != nil {
		return fmt.Errorf("hub75: %s set high: %w", p.name, err)
	}
	return nil
}

// SetLow drives the line to logic 0.
func (p *GPIOCdevPin) SetLow() error {
	if err := p.line.SetValue(0); err != nil {
		return fmt.Errorf("hub75: %s set low: %w", p.name, err)
	}
	return nil
}

// Close releases the underlying gpiocdev line.
func (p *GPIOCdevPin) Close() error {
	return p.line.Close()
}

// GPIOCdevPinout names the fourteen HUB75 lines by GPIO offset on a
// single gpiocdev chip, mirroring the Adafruit RGB Matrix Bonnet layout.
type GPIOCdevPinout struct {
	Chip                   string // e.g. "gpiochip0"
	R1, G1, B1             int
	R2, G2, B2             int
	CLK, LAT, OE           int
	A, B, C, D, E          int // D and E may be left at -1 for a 3-bit address bus
}

// BuildPinGroup requests every configured line on the pinout's chip and
// assembles a PinGroup. Negative D/E offsets are omitted, producing a
// 3-bit address bus; callers needing 4 or 5 bits set them to a valid
// offset.
func BuildPinGroup(pinout GPIOCdevPinout) (*PinGroup, []*GPIOCdevPin, error) {
	type named struct {
		offset int
		name   string
	}
	req := []named{
		{pinout.R1, "R1"}, {pinout.G1, "G1"}, {pinout.B1, "B1"},
		{pinout.R2, "R2"}, {pinout.G2, "G2"}, {pinout.B2, "B2"},
		{pinout.CLK, "CLK"}, {pinout.LAT, "LAT"}, {pinout.OE, "OE"},
		{pinout.A, "A"}, {pinout.B, "B"}, {pinout.C, "C"},
	}
	if pinout.D >= 0 {
		req = append(req, named{pinout.D, "D"})
	}
	if pinout.E >= 0 {
		req = append(req, named{pinout.E, "E"})
	}

	opened := make([]*GPIOCdevPin, 0, len(req))
	byName := make(map[string]*GPIOCdevPin, len(req))
	closeAll := func() {
		for _, p := range opened {
			p.Close()
		}
	}

	for _, r := range req {
		pin, err := RequestGPIOCdevPin(pinout.Chip, r.offset, r.name)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, pin)
		byName[r.name] = pin
	}

	addr := []OutputPin{byName["A"], byName["B"], byName["C"]}
	if d, ok := byName["D"]; ok {
		addr = append(addr, d)
	}
	if e, ok := byName["E"]; ok {
		addr = append(addr, e)
	}

	pg, err := NewPinGroup(
		byName["R1"], byName["G1"], byName["B1"],
		byName["R2"], byName["G2"], byName["B2"],
		addr, byName["CLK"], byName["LAT"], byName["OE"],
	)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return pg, opened, nil
}

// ClosePins closes every line BuildPinGroup opened.
func ClosePins(pins []*GPIOCdevPin) error {
	var firstErr error
	for _, p := range pins {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

package hub75

import "fmt"

// OutputPin is the GPIO capability a Pin Group is polymorphic over: a
// fallible set-high / set-low operation, nothing more. No width, no bus
// transfer assumptions — the caller drives one line at a time.
type OutputPin interface {
	SetHigh() error
	SetLow() error
}

// Sleeper is the capability an Engine uses to hold OE low for the BCM
// delay and to back off after a failed render pass. DelayNS guarantees
// at-least-n-nanoseconds semantics.
type Sleeper interface {
	DelayNS(ns uint32)
}

// PinGroup bundles the HUB75 pin set: the RGB sextet, a 3-5 bit row
// address bus, and the CLK/LAT/OE control trio. It is the polymorphic
// surface the Display Engine drives; the hot path (SetRGB/ClockPulse)
// must not touch anything but the pins it was given.
type PinGroup struct {
	R1, G1, B1 OutputPin
	R2, G2, B2 OutputPin
	Addr       []OutputPin // 3 to 5 address lines, A first
	CLK        OutputPin
	LAT        OutputPin
	OE         OutputPin
}

// NewPinGroup validates the address bus width and returns a PinGroup.
func NewPinGroup(r1, g1, b1, r2, g2, b2 OutputPin, addr []OutputPin, clk, lat, oe OutputPin) (*PinGroup, error) {
	if len(addr) < 3 || len(addr) > 5 {
		return nil, &InvalidCoordinatesError{What: fmt.Sprintf("address bus has %d lines, want 3-5", len(addr))}
	}
	return &PinGroup{
		R1: r1, G1: g1, B1: b1,
		R2: r2, G2: g2, B2: b2,
		Addr: addr, CLK: clk, LAT: lat, OE: oe,
	}, nil
}

// MaxAddressableRows is 2^(number of address lines present).
func (p *PinGroup) MaxAddressableRows() int {
	return 1 << len(p.Addr)
}

func pinErr(op, pin string, err error) error {
	if err == nil {
		return nil
	}
	return &PinError{Op: op, Pin: pin, Err: err}
}

// Init drives all RGB and address lines low, CLK low, LAT low, and
// deasserts OE (high — OE is active low).
func (p *PinGroup) Init() error {
	for _, pin := range []struct {
		p    OutputPin
		name string
	}{
		{p.R1, "R1"}, {p.G1, "G1"}, {p.B1, "B1"},
		{p.R2, "R2"}, {p.G2, "G2"}, {p.B2, "B2"},
		{p.CLK, "CLK"}, {p.LAT, "LAT"},
	} {
		if err := pin.p.SetLow(); err != nil {
			return pinErr("init", pin.name, err)
		}
	}
	for i, a := range p.Addr {
		if err := a.SetLow(); err != nil {
			return pinErr("init", fmt.Sprintf("ADDR%d", i), err)
		}
	}
	if err := p.OE.SetHigh(); err != nil {
		return pinErr("init", "OE", err)
	}
	return nil
}

// SetRGB drives the six data lines to the given booleans: the upper
// pixel's R/G/B followed by the lower pixel's. No implicit clock.
func (p *PinGroup) SetRGB(uR, uG, uB, lR, lG, lB bool) error {
	if err := setBool(p.R1, uR); err != nil {
		return pinErr("set_rgb", "R1", err)
	}
	if err := setBool(p.G1, uG); err != nil {
		return pinErr("set_rgb", "G1", err)
	}
	if err := setBool(p.B1, uB); err != nil {
		return pinErr("set_rgb", "B1", err)
	}
	if err := setBool(p.R2, lR); err != nil {
		return pinErr("set_rgb", "R2", err)
	}
	if err := setBool(p.G2, lG); err != nil {
		return pinErr("set_rgb", "G2", err)
	}
	if err := setBool(p.B2, lB); err != nil {
		return pinErr("set_rgb", "B2", err)
	}
	return nil
}

func setBool(pin OutputPin, v bool) error {
	if v {
		return pin.SetHigh()
	}
	return pin.SetLow()
}

// SetAddress drives the address bus to row's low len(Addr) bits. The
// caller must supply row < MaxAddressableRows().
func (p *PinGroup) SetAddress(row uint) error {
	if int(row) >= p.MaxAddressableRows() {
		return &InvalidCoordinatesError{What: fmt.Sprintf("row %d >= max addressable %d", row, p.MaxAddressableRows())}
	}
	for i, a := range p.Addr {
		bit := (row >> uint(i)) & 1
		if err := setBool(a, bit != 0); err != nil {
			return pinErr("set_address", fmt.Sprintf("ADDR%d", i), err)
		}
	}
	return nil
}

// ClockPulse drives CLK high then low, shifting one bit column into the
// panel's shift register.
func (p *PinGroup) ClockPulse() error {
	if err := p.CLK.SetHigh(); err != nil {
		return pinErr("clock_pulse", "CLK", err)
	}
	if err := p.CLK.SetLow(); err != nil {
		return pinErr("clock_pulse", "CLK", err)
	}
	return nil
}

// LatchPulse drives LAT high then low, transferring the shift register
// into the row output latches.
func (p *PinGroup) LatchPulse() error {
	if err := p.LAT.SetHigh(); err != nil {
		return pinErr("latch_pulse", "LAT", err)
	}
	if err := p.LAT.SetLow(); err != nil {
		return pinErr("latch_pulse", "LAT", err)
	}
	return nil
}

// EnableOutput drives OE low (active-low enable).
func (p *PinGroup) EnableOutput() error {
	if err := p.OE.SetLow(); err != nil {
		return pinErr("enable_output", "OE", err)
	}
	return nil
}

// DisableOutput drives OE high (deasserted).
func (p *PinGroup) DisableOutput() error {
	if err := p.OE.SetHigh(); err != nil {
		return pinErr("disable_output", "OE", err)
	}
	return nil
}

// Package gpio implements hub75.OutputPin over the Linux sysfs GPIO
// interface, for boards or kernels where go-gpiocdev's character device
// isn't available. It is the sysfs-backed sibling of
// hub75.GPIOCdevPin.
package gpio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fcurrie/hub75/pkg/hub75"
)

// sysfsRoot is the base of the sysfs GPIO tree. Overridden in tests to
// point at a fake tree instead of the real /sys.
var sysfsRoot = "/sys/class/gpio"

// skipExportSettle disables the post-export settle delay; set by tests
// against a fake sysfs tree where there's no kernel udev event to wait for.
var skipExportSettle = false

// Pin is a single sysfs-exported GPIO line, driven as an output.
type Pin struct {
	number int
	mu     sync.Mutex
}

// NewPin exports number and sets it as an output. A concurrent "device
// or resource busy" error from a prior export is tolerated.
func NewPin(number int) (*Pin, error) {
	if err := exportPin(number); err != nil {
		if !os.IsExist(err) && !strings.Contains(err.Error(), "device or resource busy") {
			return nil, fmt.Errorf("hub75/gpio: export pin %d: %w", number, err)
		}
	}

	// sysfs needs a moment to materialize the pin's directory after export.
	if !skipExportSettle {
		time.Sleep(100 * time.Millisecond)
	}

	if err := setPinDirection(number, "out"); err != nil {
		return nil, fmt.Errorf("hub75/gpio: set pin %d direction: %w", number, err)
	}

	return &Pin{number: number}, nil
}

// Close unexports the pin. Errors are returned, not swallowed — callers
// doing cleanup-on-error in a multi-pin build-out should still see them.
func (p *Pin) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return unexportPin(p.number)
}

// SetHigh drives the line to logic 1, satisfying hub75.OutputPin.
func (p *Pin) SetHigh() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return writePinValue(p.number, 1)
}

// SetLow drives the line to logic 0, satisfying hub75.OutputPin.
func (p *Pin) SetLow() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return writePinValue(p.number, 0)
}

// Value reads back the line's current level.
func (p *Pin) Value() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return readPinValue(p.number)
}

// Pinout names the fourteen HUB75 lines by sysfs GPIO number, the
// sysfs-backed sibling of hub75.GPIOCdevPinout. D and E may be left
// negative for a 3-bit address bus.
type Pinout struct {
	R1, G1, B1    int
	R2, G2, B2    int
	CLK, LAT, OE  int
	A, B, C, D, E int
}

// BuildPinGroup exports every configured line and assembles a
// hub75.PinGroup, mirroring hub75.BuildPinGroup's cdev-backed
// counterpart.
func BuildPinGroup(pinout Pinout) (*hub75.PinGroup, []*Pin, error) {
	type named struct {
		number int
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

	opened := make([]*Pin, 0, len(req))
	byName := make(map[string]*Pin, len(req))
	closeAll := func() {
		for _, p := range opened {
			p.Close()
		}
	}

	for _, r := range req {
		pin, err := NewPin(r.number)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("hub75/gpio: build pin group: line %s: %w", r.name, err)
		}
		opened = append(opened, pin)
		byName[r.name] = pin
	}

	addr := []hub75.OutputPin{byName["A"], byName["B"], byName["C"]}
	if d, ok := byName["D"]; ok {
		addr = append(addr, d)
	}
	if e, ok := byName["E"]; ok {
		addr = append(addr, e)
	}

	pg, err := hub75.NewPinGroup(
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
func ClosePins(pins []*Pin) error {
	var firstErr error
	for _, p := range pins {
		if err := p.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func exportPin(number int) error {
	f, err := os.OpenFile(filepath.Join(sysfsRoot, "export"), os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(fmt.Sprintf("%d", number))
	return err
}

func unexportPin(number int) error {
	f, err := os.OpenFile(filepath.Join(sysfsRoot, "unexport"), os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(fmt.Sprintf("%d", number))
	return err
}

func setPinDirection(number int, direction string) error {
	path := filepath.Join(sysfsRoot, fmt.Sprintf("gpio%d", number), "direction")
	f, err := os.OpenFile(path, os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(direction); err != nil {
		return fmt.Errorf("write direction to %s: %w", path, err)
	}
	return nil
}

func writePinValue(number int, value int) error {
	path := filepath.Join(sysfsRoot, fmt.Sprintf("gpio%d", number), "value")
	f, err := os.OpenFile(path, os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(fmt.Sprintf("%d", value)); err != nil {
		return fmt.Errorf("write value to %s: %w", path, err)
	}
	return nil
}

func readPinValue(number int) (int, error) {
	path := filepath.Join(sysfsRoot, fmt.Sprintf("gpio%d", number), "value")
	f, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	var value int
	if _, err := fmt.Fscanf(f, "%d", &value); err != nil {
		return 0, fmt.Errorf("read value from %s: %w", path, err)
	}
	return value, nil
}

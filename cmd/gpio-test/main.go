// Command gpio-test toggles a single GPIO line once a second so a
// multimeter or scope can confirm wiring before a full HUB75 bring-up.
// It exercises hub75.OutputPin directly, independent of PinGroup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fcurrie/hub75/pkg/gpio"
	"github.com/fcurrie/hub75/pkg/hub75"
)

// requestPin opens a single line on the chosen backend: "cdev" (the
// default, go-gpiocdev) or "sysfs" (pkg/gpio's fallback, offset is then
// a raw sysfs GPIO number rather than a chip-relative line offset).
func requestPin(backend, chip string, offset int) (hub75.OutputPin, func() error, error) {
	switch backend {
	case "cdev", "":
		pin, err := hub75.RequestGPIOCdevPin(chip, offset, "test")
		if err != nil {
			return nil, nil, err
		}
		return pin, pin.Close, nil
	case "sysfs":
		pin, err := gpio.NewPin(offset)
		if err != nil {
			return nil, nil, err
		}
		return pin, pin.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown GPIO backend %q", backend)
	}
}

func main() {
	backend := flag.String("gpio-backend", "cdev", "GPIO backend: cdev (go-gpiocdev) or sysfs (pkg/gpio fallback)")
	chip := flag.String("chip", "gpiochip0", "gpiocdev chip name (cdev backend only)")
	offset := flag.Int("offset", 5, "line offset on the chip (cdev) or sysfs GPIO number (sysfs)")
	flag.Parse()

	log.Printf("requesting %s offset %d as output (%s backend)", *chip, *offset, *backend)
	state, closePin, err := requestPin(*backend, *chip, *offset)
	if err != nil {
		log.Fatalf("request line: %v", err)
	}
	defer closePin()

	log.Println("toggling once a second, ctrl-C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	high := false
	for {
		select {
		case <-ctx.Done():
			log.Println("shutting down")
			return
		case <-ticker.C:
			high = !high
			var err error
			if high {
				err = state.SetHigh()
			} else {
				err = state.SetLow()
			}
			if err != nil {
				log.Printf("set value: %v", err)
				continue
			}
			log.Printf("line now %v", high)
		}
	}
}

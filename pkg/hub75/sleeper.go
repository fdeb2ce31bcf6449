package hub75

import "time"

// RealSleeper implements Sleeper with the standard library's
// time.Sleep, the same mechanism used for row/latch delays elsewhere
// in this driver.
type RealSleeper struct{}

// DelayNS blocks for at least ns nanoseconds.
func (RealSleeper) DelayNS(ns uint32) {
	time.Sleep(time.Duration(ns) * time.Nanosecond)
}

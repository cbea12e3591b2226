// Package gpio abstracts the single digital output pin the transmitter
// drives, plus the millisecond clock the transmission budget is measured
// against.
package gpio

// Level is the logical state driven onto an output pin.
type Level int

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "HIGH"
	}
	return "LOW"
}

// Port is the capability the transmission controller consumes. Writes
// are synchronous and take effect immediately; NowMillis is
// monotonically non-decreasing for the duration of a transmission.
type Port interface {
	// ConfigureOutput puts the pin in output mode, driven low.
	ConfigureOutput(pin int) error

	// WriteLevel drives the pin to the given level.
	WriteLevel(pin int, level Level)

	// NowMillis returns milliseconds since an arbitrary but stable epoch.
	NowMillis() int64
}

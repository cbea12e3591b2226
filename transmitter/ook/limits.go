// Package ook validates OOK pulse trains and bit-bangs them onto a
// digital output pin with microsecond timing, using a busy-wait delay
// to hold each level. It is the core of the transmitter: everything
// else marshals input into it or reports what it did.
package ook

// Transmission limits. These define the envelope a low-cost ASK
// receiver can still decode and must match the pilight-usb-nano
// firmware limits, which the picode notation shares.
const (
	MaxPulseLength = 100000 // longest single pulse (microseconds)
	MaxPulseCount  = 1000   // most pulses in one train
	MaxTxTime      = 2000   // transmission wall-clock budget (milliseconds)
	MaxTxRepeats   = 20     // most replays of one train
	DefaultRepeats = 4      // replays when the caller does not say
)

// Addressable BCM GPIO range on the Raspberry Pi board family. Pins
// inside the range may still be claimed by on-board buses; that
// narrower exclusion is not enforced here.
const (
	MinGPIO = 2
	MaxGPIO = 27
)

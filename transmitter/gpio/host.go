package gpio

import (
	"fmt"
	"strconv"
	"time"

	pgpio "periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// Host is the process-wide hardware context. Open performs the one-time
// GPIO initialisation and must succeed before any transmission; a
// failure is fatal to the whole process, not to a single call.
type Host struct {
	epoch time.Time
	pins  map[int]pgpio.PinIO
	open  bool
}

func NewHost() *Host {
	return &Host{pins: make(map[int]pgpio.PinIO)}
}

// Open initialises the host GPIO drivers. BCM pin numbering is used
// throughout, matching the silkscreen-independent SOC channel numbers.
func (h *Host) Open() error {
	if h.open {
		return nil
	}
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("gpio host init: %w", err)
	}
	h.epoch = time.Now()
	h.open = true
	return nil
}

// Close releases the pin handles. The underlying host drivers stay
// loaded for the lifetime of the process.
func (h *Host) Close() error {
	for n, p := range h.pins {
		p.Out(pgpio.Low)
		delete(h.pins, n)
	}
	h.open = false
	return nil
}

func (h *Host) ConfigureOutput(pin int) error {
	p, err := h.pin(pin)
	if err != nil {
		return err
	}
	return p.Out(pgpio.Low)
}

func (h *Host) WriteLevel(pin int, level Level) {
	p, err := h.pin(pin)
	if err != nil {
		return
	}
	if level == High {
		p.Out(pgpio.High)
	} else {
		p.Out(pgpio.Low)
	}
}

func (h *Host) NowMillis() int64 {
	return time.Since(h.epoch).Milliseconds()
}

func (h *Host) pin(n int) (pgpio.PinIO, error) {
	if !h.open {
		return nil, fmt.Errorf("gpio host not initialised")
	}
	if p, ok := h.pins[n]; ok {
		return p, nil
	}
	p := gpioreg.ByName("GPIO" + strconv.Itoa(n))
	if p == nil {
		return nil, fmt.Errorf("gpio %d not present on this host", n)
	}
	h.pins[n] = p
	return p, nil
}

// Package nano relays pulse trains to a pilight-usb-nano compatible
// transmitter attached over a serial line, as an alternative to driving
// a local GPIO. The device consumes the same picode notation and shares
// the same transmission limits.
package nano

import (
	"bufio"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tarm/serial"

	"github.com/ooktx/rf-signal-transmitter/transmitter/ook"
	"github.com/ooktx/rf-signal-transmitter/transmitter/picode"
)

// Device is an open serial connection to the transmitter.
type Device struct {
	port    *serial.Port
	scanner *bufio.Scanner
}

func Open(name string, baud int) (*Device, error) {
	config := &serial.Config{Name: name, Baud: baud, ReadTimeout: 2 * time.Second}
	port, err := serial.OpenPort(config)
	if err != nil {
		return nil, fmt.Errorf("nano: open %s: %w", name, err)
	}
	return &Device{port: port, scanner: bufio.NewScanner(port)}, nil
}

func (d *Device) Close() error { return d.port.Close() }

// Transmit validates the train against the local limits, encodes it as
// a picode string and ships it to the device. Validation failures
// return before any bytes are written. The returned time is the local
// round-trip in milliseconds; the device paces the pulses itself.
func (d *Device) Transmit(pin int, pulses []int, repeats int) (int64, error) {
	if _, err := ook.Validate(pin, pulses, repeats); err != nil {
		return 0, err
	}
	code, err := picode.Encode(pulses, repeats)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if _, err := d.port.Write([]byte(code)); err != nil {
		return 0, fmt.Errorf("nano: serial write: %w", err)
	}

	// The firmware acknowledges each code with a single line; an
	// empty read means the ack timed out, which the device treats as
	// fire-and-forget.
	if d.scanner.Scan() {
		line := strings.TrimSpace(d.scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "error") {
			return 0, fmt.Errorf("nano: device rejected code: %s", line)
		}
		if line != "" {
			log.Printf("nano: device replied %q", line)
		}
	}

	return time.Since(start).Milliseconds(), nil
}

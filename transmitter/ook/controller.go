package ook

import "github.com/ooktx/rf-signal-transmitter/transmitter/gpio"

// levelForIndex maps a pulse index to the level held for that pulse's
// duration. Even indexes drive HIGH, odd indexes LOW, so index 0 is
// always the energised pulse. Receivers depend on this polarity.
func levelForIndex(i int) gpio.Level {
	if i%2 == 0 {
		return gpio.High
	}
	return gpio.Low
}

// Transmitter replays validated pulse trains onto a single output pin.
// It keeps no state between calls; serialising concurrent transmissions
// is the caller's responsibility.
type Transmitter struct {
	port gpio.Port
	hold func(us uint32)
}

func NewTransmitter(port gpio.Port) *Transmitter {
	return &Transmitter{port: port, hold: holdMicros}
}

// Transmit validates the train, then drives it onto the pin repeats
// times, holding each level for its pulse duration. The wall-clock
// budget is checked after every full pass: exceeding it truncates the
// remaining repeats and is not an error. The pin is forced LOW before
// returning, however the loop ended.
//
// The returned value is the measured elapsed time in milliseconds.
// Validation failures return before the pin is configured or written.
func (t *Transmitter) Transmit(pin int, pulses []int, repeats int) (int64, error) {
	train, err := Validate(pin, pulses, repeats)
	if err != nil {
		return 0, err
	}

	if err := t.port.ConfigureOutput(pin); err != nil {
		return 0, err
	}

	start := t.port.NowMillis()
	for r := 0; r < repeats; r++ {
		for i := 0; i < train.Len(); i++ {
			t.port.WriteLevel(pin, levelForIndex(i))
			t.hold(train.At(i))
		}
		if t.port.NowMillis()-start > MaxTxTime {
			break
		}
	}
	elapsed := t.port.NowMillis() - start

	// The output must never rest energised.
	t.port.WriteLevel(pin, gpio.Low)

	return elapsed, nil
}

package ook

// PulseTrain holds a validated pulse sequence in a fixed-capacity
// buffer sized to MaxPulseCount. It is filled once by Validate and
// never mutated afterwards.
type PulseTrain struct {
	pulses [MaxPulseCount]uint32
	count  int
}

// Len returns the number of pulses in the train. Always even for a
// validated train.
func (t *PulseTrain) Len() int { return t.count }

// At returns the duration of pulse i in microseconds.
func (t *PulseTrain) At(i int) uint32 { return t.pulses[i] }

// Durations copies the train out as a plain slice.
func (t *PulseTrain) Durations() []uint32 {
	out := make([]uint32, t.count)
	copy(out, t.pulses[:t.count])
	return out
}

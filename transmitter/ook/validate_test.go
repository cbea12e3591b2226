package ook

import (
	"errors"
	"testing"
)

func evenPulses(n, length int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = length
	}
	return p
}

func TestValidateArgumentContract(t *testing.T) {
	good := []int{500, 500}
	cases := []struct {
		name    string
		pin     int
		repeats int
	}{
		{"pin below range", 1, 4},
		{"pin above range", 28, 4},
		{"pin negative", -1, 4},
		{"repeats zero", 18, 0},
		{"repeats above max", 18, MaxTxRepeats + 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Validate(c.pin, good, c.repeats)
			var argErr *ArgumentError
			if !errors.As(err, &argErr) {
				t.Fatalf("want ArgumentError, got %v", err)
			}
		})
	}
}

func TestValidatePolicy(t *testing.T) {
	cases := []struct {
		name   string
		pulses []int
		kind   ErrorKind
		code   int
	}{
		{"empty train", nil, InvalidPulseCount, -2},
		{"too many pulses", evenPulses(MaxPulseCount+2, 100), InvalidPulseCount, -2},
		{"odd count", []int{500, 500, 500}, PulseTrainOutOfOrder, -3},
		{"zero length", []int{500, 0}, InvalidPulseLength, -4},
		{"negative length", []int{-10, 500}, InvalidPulseLength, -4},
		{"over max length", []int{500, MaxPulseLength + 1}, InvalidPulseLength, -4},
		{"over total tx time", evenPulses(22, MaxPulseLength), InvalidTxTime, -5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Validate(18, c.pulses, 4)
			var polErr *PolicyError
			if !errors.As(err, &polErr) {
				t.Fatalf("want PolicyError, got %v", err)
			}
			if polErr.Kind != c.kind {
				t.Errorf("kind = %v, want %v", polErr.Kind, c.kind)
			}
			if got := CodeOf(err); got != c.code {
				t.Errorf("CodeOf = %d, want %d", got, c.code)
			}
		})
	}
}

func TestValidateShortCircuitsOnFirstViolation(t *testing.T) {
	// Pulse 1 is too long, pulse 3 is zero: the walk must stop at
	// index 1.
	_, err := Validate(18, []int{500, MaxPulseLength + 1, 500, 0}, 4)
	var polErr *PolicyError
	if !errors.As(err, &polErr) {
		t.Fatalf("want PolicyError, got %v", err)
	}
	if polErr.Kind != InvalidPulseLength || polErr.Index != 1 {
		t.Fatalf("got kind=%v index=%d, want InvalidPulseLength at 1", polErr.Kind, polErr.Index)
	}
}

func TestValidateSinglePassBudgetOnly(t *testing.T) {
	// One pass is 1.2s, well within the 2s budget. 20 repeats would
	// run far over it, but the validator only checks one pass.
	pulses := evenPulses(12, 100000)
	train, err := Validate(18, pulses, MaxTxRepeats)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if train.Len() != len(pulses) {
		t.Fatalf("train.Len() = %d, want %d", train.Len(), len(pulses))
	}
}

func TestValidateCopiesPulses(t *testing.T) {
	pulses := []int{500, 1000}
	train, err := Validate(18, pulses, 1)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	pulses[0] = 9999
	if train.At(0) != 500 {
		t.Fatalf("train aliases caller slice: At(0) = %d", train.At(0))
	}
	got := train.Durations()
	if len(got) != 2 || got[0] != 500 || got[1] != 1000 {
		t.Fatalf("Durations() = %v", got)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(nil); got != 0 {
		t.Errorf("CodeOf(nil) = %d, want 0", got)
	}
	if got := CodeOf(errors.New("boom")); got != -1 {
		t.Errorf("CodeOf(opaque) = %d, want -1", got)
	}
	if got := CodeOf(&PolicyError{Kind: PulseTrainOutOfOrder, Index: -1}); got != -3 {
		t.Errorf("CodeOf(out of order) = %d, want -3", got)
	}
}

package ook

import (
	"testing"
	"time"
)

func TestHoldMicrosBlocksAtLeastRequested(t *testing.T) {
	for _, us := range []uint32{100, 1000, 5000} {
		start := time.Now()
		holdMicros(us)
		if got := time.Since(start); got < time.Duration(us)*time.Microsecond {
			t.Errorf("holdMicros(%d) returned after %v", us, got)
		}
	}
}

func TestHoldMicrosZero(t *testing.T) {
	start := time.Now()
	holdMicros(0)
	if got := time.Since(start); got > 10*time.Millisecond {
		t.Errorf("holdMicros(0) blocked for %v", got)
	}
}

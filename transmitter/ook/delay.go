package ook

import "time"

// holdMicros blocks the calling goroutine for at least us microseconds,
// measured from the instant of the call on the monotonic clock.
//
// It spin-polls instead of sleeping: a cooperative sleep on a
// preemptible kernel cannot hold a level within the tolerance a 433MHz
// receiver needs, so the delay commits the calling core for its whole
// duration. There is no suspension point inside the loop.
func holdMicros(us uint32) {
	deadline := time.Now().Add(time.Duration(us) * time.Microsecond)
	for time.Now().Before(deadline) {
	}
}

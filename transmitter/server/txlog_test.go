package server

import (
	"testing"
	"time"
)

func recvTxEvent(t *testing.T, ch <-chan txEvent, d time.Duration) (txEvent, bool) {
	t.Helper()
	select {
	case ev := <-ch:
		return ev, true
	case <-time.After(d):
		return txEvent{}, false
	}
}

func TestTxLogNotifyDeliversEvents(t *testing.T) {
	l := newTxLog()
	ch, err := l.notify("sub1")
	if err != nil {
		t.Fatalf("notify: %v", err)
	}

	l.insert(txEvent{Picode: "c:01;p:10,90@", PulseCount: 2, ElapsedMS: 7})

	ev, ok := recvTxEvent(t, ch, 50*time.Millisecond)
	if !ok {
		t.Fatal("expected event, got timeout")
	}
	if ev.Picode != "c:01;p:10,90@" || ev.ElapsedMS != 7 {
		t.Errorf("event = %+v", ev)
	}

	count, last := l.stats()
	if count != 1 || last.IsZero() {
		t.Errorf("stats = %d, %v", count, last)
	}
}

func TestTxLogDuplicateSubscriber(t *testing.T) {
	l := newTxLog()
	if _, err := l.notify("sub"); err != nil {
		t.Fatalf("first notify: %v", err)
	}
	if _, err := l.notify("sub"); err == nil {
		t.Fatal("second notify succeeded, want error")
	}
}

func TestTxLogUnNotifyStopsDelivery(t *testing.T) {
	l := newTxLog()
	ch, err := l.notify("sub")
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := l.unNotify("sub"); err != nil {
		t.Fatalf("unNotify: %v", err)
	}
	if err := l.unNotify("sub"); err == nil {
		t.Fatal("second unNotify succeeded, want error")
	}

	l.insert(txEvent{Picode: "c:01;p:10,90@"})
	if _, ok := recvTxEvent(t, ch, 10*time.Millisecond); ok {
		t.Fatal("received event after unNotify")
	}
}

func TestTxLogSlowSubscriberDoesNotBlock(t *testing.T) {
	l := newTxLog()
	if _, err := l.notify("slow"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	done := make(chan struct{})
	go func() {
		// Far more events than the subscriber buffer holds; the
		// transmit path must keep going regardless.
		for i := 0; i < 100; i++ {
			l.insert(txEvent{PulseCount: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("insert blocked on a slow subscriber")
	}

	count, _ := l.stats()
	if count != 100 {
		t.Errorf("count = %d, want 100", count)
	}
}

package server

import (
	"fmt"
	"sync"
	"time"
)

// txEvent describes one completed transmission, as pushed to stream
// subscribers and counted for /status.
type txEvent struct {
	Picode     string `json:"picode"`
	PulseCount int    `json:"pulse-count"`
	Repeats    int    `json:"repeats"`
	ElapsedMS  int64  `json:"elapsed-ms"`
	SentAt     string `json:"sent-at"`
}

type txListener struct {
	subscriber string
	events     chan txEvent
}

type txNotifier interface {
	notify(subscriber string) (<-chan txEvent, error)
	unNotify(subscriber string) error
}

// txLog keeps the transmission counters and fans completed
// transmissions out to stream subscribers.
type txLog struct {
	mu        sync.Mutex
	count     int64
	last      time.Time
	listeners []txListener
}

func newTxLog() *txLog {
	return &txLog{}
}

func (l *txLog) insert(ev txEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count++
	l.last = time.Now()
	for _, listener := range l.listeners {
		// A slow subscriber must not stall the transmit path.
		select {
		case listener.events <- ev:
		default:
		}
	}
}

func (l *txLog) notify(subscriber string) (<-chan txEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, listener := range l.listeners {
		if listener.subscriber == subscriber {
			return nil, fmt.Errorf("subscriber '%s' already registered", subscriber)
		}
	}
	listener := txListener{subscriber, make(chan txEvent, 8)}
	l.listeners = append(l.listeners, listener)
	return listener.events, nil
}

func (l *txLog) unNotify(subscriber string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, listener := range l.listeners {
		if listener.subscriber == subscriber {
			l.listeners = append(l.listeners[:i], l.listeners[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("subscriber '%s' not registered", subscriber)
}

func (l *txLog) stats() (int64, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count, l.last
}

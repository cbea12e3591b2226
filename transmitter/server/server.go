// Package server is the HTTP front end of the transmitter daemon. It
// turns picode strings into pulse lists, hands them to a Transmitter,
// and reports configuration, status and a live transmission stream.
package server

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"
)

// Transmitter sends one validated pulse train and reports the elapsed
// transmission time in milliseconds. Implemented by ook.Transmitter
// for a local GPIO and nano.Device for a serial relay.
type Transmitter interface {
	Transmit(pin int, pulses []int, repeats int) (int64, error)
}

// Config is echoed verbatim at /config.
type Config struct {
	ListenIP string `json:"listen_ip"`
	Port     int    `json:"listen_port"`
	GPIO     int    `json:"tx_gpio"`
	Serial   string `json:"serial_port,omitempty"`
	Affinity string `json:"isolated_cpu_affinity"`
}

type service struct {
	cfg     Config
	tx      Transmitter
	txLog   *txLog
	started time.Time
	now     func() time.Time

	// Serialises transmissions; the hardware path assumes at most one
	// in flight per process.
	mu sync.Mutex
}

func newService(cfg Config, tx Transmitter) *service {
	return &service{
		cfg:     cfg,
		tx:      tx,
		txLog:   newTxLog(),
		started: time.Now(),
		now:     time.Now,
	}
}

func (s *service) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/picode", s.picodeHandler)
	mux.HandleFunc("/picode/", s.picodeHandler)
	mux.HandleFunc("/config", s.configHandler)
	mux.HandleFunc("/status", s.statusHandler)
	mux.HandleFunc("/tx/stream", s.streamHandler)
	return mux
}

// Start runs the HTTP server until an interrupt arrives, then shuts it
// down gracefully. It blocks for the lifetime of the process.
func Start(cfg Config, tx Transmitter) {
	s := newService(cfg, tx)

	addr := net.JoinHostPort(cfg.ListenIP, strconv.Itoa(cfg.Port))
	httpServer := http.Server{Addr: addr, Handler: logRequests(s.routes())}
	httpServer.RegisterOnShutdown(func() {
		log.Print("Shutting down server")
	})

	go func() {
		intr := make(chan os.Signal, 1)
		signal.Notify(intr, os.Interrupt)
		<-intr
		httpServer.Shutdown(context.Background())
	}()

	log.Printf("Server started on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
	log.Print("Server stopped")
}

// logRequests writes one line per request with the response status.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %s %d", r.RemoteAddr, r.Method, r.URL, rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack and Flush pass through so the websocket upgrade on /tx/stream
// still works behind the logging wrapper.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	return h.Hijack()
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

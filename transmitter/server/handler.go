package server

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/ooktx/rf-signal-transmitter/transmitter/ook"
	"github.com/ooktx/rf-signal-transmitter/transmitter/picode"
)

// picodeHandler serves /picode and /picode/{code}. The code arrives as
// a query parameter, a form field, or the rest of the URL path.
func (s *service) picodeHandler(w http.ResponseWriter, r *http.Request) {
	var raw string
	switch r.Method {
	case http.MethodGet:
		raw = strings.TrimSpace(r.URL.Query().Get("picode"))
		if raw == "" {
			if rest := strings.TrimPrefix(r.URL.Path, "/picode"); len(rest) > 1 {
				raw = strings.TrimSpace(strings.TrimPrefix(rest, "/"))
			}
		}
	case http.MethodPost:
		raw = strings.TrimSpace(r.PostFormValue("picode"))
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if raw == "" {
		http.Error(w, "Bad Request: no picode data", http.StatusBadRequest)
		return
	}
	s.transmitPicode(w, raw)
}

func (s *service) transmitPicode(w http.ResponseWriter, raw string) {
	code, err := picode.Parse(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Unprocessable Entity: %v", err), http.StatusUnprocessableEntity)
		return
	}
	pulses, err := code.PulseList()
	if err != nil {
		http.Error(w, fmt.Sprintf("Unprocessable Entity: %v", err), http.StatusUnprocessableEntity)
		return
	}

	// A timed code overrides any repeats value; otherwise the code's
	// repeats apply, with the envelope default as fallback.
	repeats := ook.DefaultRepeats
	if code.Timed == 0 && code.Repeats > 0 {
		repeats = code.Repeats
	}

	// One transmission in flight at a time; the core does not lock.
	s.mu.Lock()
	defer s.mu.Unlock()

	if code.Timed > 0 {
		deadline := s.now().Add(time.Duration(code.Timed) * time.Second)
		for s.now().Before(deadline) {
			if _, err := s.tx.Transmit(s.cfg.GPIO, pulses, repeats); err != nil {
				s.writeTxError(w, err)
				return
			}
		}
		s.txLog.insert(txEvent{
			Picode:     raw,
			PulseCount: len(pulses),
			Repeats:    repeats,
			SentAt:     time.Now().Format(timeLayout),
		})
		fmt.Fprintf(w, "RF TX sent picode for %d secs OK\n", code.Timed)
		return
	}

	elapsed, err := s.tx.Transmit(s.cfg.GPIO, pulses, repeats)
	if err != nil {
		s.writeTxError(w, err)
		return
	}
	dropped := "OK"
	if elapsed > ook.MaxTxTime {
		dropped = "TX dropped!"
	}
	s.txLog.insert(txEvent{
		Picode:     raw,
		PulseCount: len(pulses),
		Repeats:    repeats,
		ElapsedMS:  elapsed,
		SentAt:     time.Now().Format(timeLayout),
	})
	fmt.Fprintf(w, "RF TX sent picode in %d ms %s\n", elapsed, dropped)
}

// writeTxError distinguishes caller-contract violations (a hard 400)
// from policy rejections, which carry their legacy wire code in the
// body the way the original serial firmware reported them.
func (s *service) writeTxError(w http.ResponseWriter, err error) {
	var argErr *ook.ArgumentError
	if errors.As(err, &argErr) {
		http.Error(w, fmt.Sprintf("Bad Request: %v", err), http.StatusBadRequest)
		return
	}
	http.Error(w, fmt.Sprintf("ERROR (%d)", ook.CodeOf(err)), http.StatusFailedDependency)
}

func (s *service) configHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	output, err := json.Marshal(s.cfg)
	if err != nil {
		log.Print(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(output)
}

type statusReply struct {
	StartTime string `json:"start_time"`
	Uptime    string `json:"uptime"`
	TxCount   int64  `json:"tx_count"`
	LastTx    string `json:"last_tx"`
	Affinity  string `json:"isolated_cpu_affinity"`
}

func (s *service) statusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	count, last := s.txLog.stats()
	lastTx := "never"
	if !last.IsZero() {
		lastTx = last.Format(timeLayout)
	}
	reply := statusReply{
		StartTime: s.started.Format(timeLayout),
		Uptime:    uptimeString(time.Since(s.started)),
		TxCount:   count,
		LastTx:    lastTx,
		Affinity:  s.cfg.Affinity,
	}
	output, err := json.Marshal(reply)
	if err != nil {
		log.Print(err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.Write(output)
}

// streamHandler pushes every completed transmission to the websocket
// client until it disconnects.
func (s *service) streamHandler(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: []string{"*"}})
	if err != nil {
		log.Print(err)
		return
	}
	log.Printf("Accepted websocket request from %s", r.RemoteAddr)
	defer log.Printf("Closing websocket connection for %s", r.RemoteAddr)
	defer c.Close(websocket.StatusNormalClosure, "Handler exits")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	subscriber := getSubscriberID(r.RemoteAddr)
	onTx, err := s.txLog.notify(subscriber)
	if err != nil {
		c.Close(websocket.StatusNormalClosure, "Already subscribed")
		return
	}
	defer func() {
		if err := s.txLog.unNotify(subscriber); err != nil {
			log.Print(err)
		}
	}()

	ctx = c.CloseRead(ctx)
	for {
		select {
		case ev := <-onTx:
			if err := writeEvent(ctx, c, ev); err != nil {
				log.Print(err)
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func getSubscriberID(data string) string {
	h := sha1.Sum([]byte(data))
	return hex.EncodeToString(h[:])
}

func writeEvent(ctx context.Context, c *websocket.Conn, ev txEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()
	return wsjson.Write(ctx, c, ev)
}

const timeLayout = "2006-01-02 15:04:05"

// uptimeString renders a duration as "N days, N hours, N minutes,
// N seconds", omitting leading zero fields.
func uptimeString(d time.Duration) string {
	total := int64(d.Seconds())
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	if days > 0 {
		fmt.Fprintf(&b, "%d %s, ", days, plural(days, "day"))
	}
	if b.Len() > 0 || hours > 0 {
		fmt.Fprintf(&b, "%d %s, ", hours, plural(hours, "hour"))
	}
	if b.Len() > 0 || minutes > 0 {
		fmt.Fprintf(&b, "%d %s, ", minutes, plural(minutes, "minute"))
	}
	fmt.Fprintf(&b, "%d %s", seconds, plural(seconds, "second"))
	return b.String()
}

func plural(n int64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

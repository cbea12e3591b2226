// Package picode implements the pilight string notation for OOK pulse
// trains, e.g.
//
//	c:011010100101011010011010@
//	c:0110;p:1400,600,6800;r:5@
//
// The "c:" section is a sequence of pulse-type digits, each indexing
// into the "p:" list of pulse lengths in microseconds. An optional
// third section carries either "r:" (transmit repeats) or "t:" (timed
// retransmission, seconds).
package picode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Grammar limits. The pulse-length bound must match the transmitter
// envelope in the ook package.
const (
	MaxPulseTypes  = 10 // pulse-type digits run 0..9
	MaxTParameter  = 30 // upper bound of "t:", seconds
	MaxRParameter  = 20 // upper bound of "r:", repeats
	maxPulseLength = 100000

	// Shortest parseable code, one character longer than
	// "c:01;p:10,90@".
	minCodeLength = 14
)

// Code is a parsed picode string.
type Code struct {
	Pulses  []int // pulse-type sequence, each an index into Lengths
	Lengths []int // pulse lengths in microseconds
	Repeats int   // from "r:", 0 when absent
	Timed   int   // from "t:", seconds, 0 when absent
}

// Parse decodes a picode string. Parsing is case-insensitive and the
// code must end with '@'. An odd number of pulse-type digits is fixed
// up by duplicating the last digit, so the resulting train always has
// complete HIGH/LOW pairs.
func Parse(s string) (*Code, error) {
	if len(s) < minCodeLength {
		return nil, errors.New("picode: too short")
	}
	s = strings.ToLower(s)
	if !strings.HasSuffix(s, "@") {
		return nil, errors.New("picode: missing '@' terminator")
	}
	s = strings.TrimSuffix(s, "@")

	params := strings.Split(s, ";")
	if len(params) < 2 || len(params) > 3 {
		return nil, fmt.Errorf("picode: %d sections, want 2 or 3", len(params))
	}

	code := &Code{}

	if len(params) == 3 {
		key, value, ok := strings.Cut(params[2], ":")
		if !ok {
			return nil, errors.New("picode: malformed third section")
		}
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("picode: invalid %q value %q", key, value)
		}
		switch key {
		case "r":
			if n > MaxRParameter {
				return nil, fmt.Errorf("picode: repeats %d over limit %d", n, MaxRParameter)
			}
			code.Repeats = n
		case "t":
			if n > MaxTParameter {
				return nil, fmt.Errorf("picode: timed %ds over limit %ds", n, MaxTParameter)
			}
			code.Timed = n
		default:
			return nil, fmt.Errorf("picode: third section %q, want \"r\" or \"t\"", key)
		}
	}

	key, value, ok := strings.Cut(params[1], ":")
	if !ok || key != "p" {
		return nil, errors.New("picode: second section must be \"p:\"")
	}
	fields := strings.Split(value, ",")
	if len(fields) < 1 || len(fields) >= MaxPulseTypes {
		return nil, fmt.Errorf("picode: %d pulse lengths, want 1..%d", len(fields), MaxPulseTypes-1)
	}
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 || n > maxPulseLength {
			return nil, fmt.Errorf("picode: invalid pulse length %q", f)
		}
		code.Lengths = append(code.Lengths, n)
	}

	key, value, ok = strings.Cut(params[0], ":")
	if !ok || key != "c" {
		return nil, errors.New("picode: first section must be \"c:\"")
	}
	if len(value) == 0 {
		return nil, errors.New("picode: empty pulse-type sequence")
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("picode: invalid pulse type %q", r)
		}
		code.Pulses = append(code.Pulses, int(r-'0'))
	}
	if len(code.Pulses)%2 != 0 {
		code.Pulses = append(code.Pulses, code.Pulses[len(code.Pulses)-1])
	}

	return code, nil
}

// PulseList flattens the code into the microsecond pulse list the
// transmitter consumes. Repeats and Timed are not applied here.
func (c *Code) PulseList() ([]int, error) {
	out := make([]int, len(c.Pulses))
	for i, t := range c.Pulses {
		if t >= len(c.Lengths) {
			return nil, fmt.Errorf("picode: pulse type %d has no length entry", t)
		}
		out[i] = c.Lengths[t]
	}
	return out, nil
}

// Encode renders a pulse list in picode notation, for relaying to a
// serial transmitter that speaks the same format. At most 9 distinct
// pulse lengths can be represented. A repeats value of 0 omits the
// "r:" section.
func Encode(pulses []int, repeats int) (string, error) {
	if len(pulses) == 0 {
		return "", errors.New("picode: empty pulse list")
	}
	var b strings.Builder
	b.WriteString("c:")

	var lengths []int
	index := make(map[int]int)
	for _, p := range pulses {
		i, ok := index[p]
		if !ok {
			if len(lengths) >= MaxPulseTypes-1 {
				return "", errors.New("picode: too many distinct pulse lengths")
			}
			i = len(lengths)
			index[p] = i
			lengths = append(lengths, p)
		}
		b.WriteByte(byte('0' + i))
	}

	b.WriteString(";p:")
	for i, l := range lengths {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(l))
	}
	if repeats > 0 {
		fmt.Fprintf(&b, ";r:%d", repeats)
	}
	b.WriteByte('@')
	return b.String(), nil
}

// Find extracts candidate picode spans ("c...@") from free text. The
// spans are not validated; feed them to Parse.
func Find(s string) []string {
	var found []string
	for len(s) > 0 {
		c := strings.IndexByte(s, 'c')
		if c < 0 {
			break
		}
		a := strings.IndexByte(s[c:], '@')
		if a < 0 {
			break
		}
		found = append(found, s[c:c+a+1])
		s = s[c+a+1:]
	}
	return found
}

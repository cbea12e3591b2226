//go:build linux

package affinity

import "testing"

func TestParseCPUList(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"0-3\n", 4},
		{"0", 1},
		{"0,2-5", 6},
		{"0-1,3", 4},
	}
	for _, c := range cases {
		got, err := parseCPUList(c.in)
		if err != nil {
			t.Errorf("parseCPUList(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseCPUList(%q) = %d, want %d", c.in, got, c.want)
		}
	}
	if _, err := parseCPUList("zero"); err == nil {
		t.Error("parseCPUList(\"zero\") succeeded, want error")
	}
}

func TestIsolateReportsSomething(t *testing.T) {
	if got := Isolate(); got == "" {
		t.Error("Isolate returned an empty status")
	}
}

package gpio

import "testing"

func TestLevelString(t *testing.T) {
	if got := High.String(); got != "HIGH" {
		t.Errorf("High.String() = %q", got)
	}
	if got := Low.String(); got != "LOW" {
		t.Errorf("Low.String() = %q", got)
	}
}

func TestHostRejectsUseBeforeOpen(t *testing.T) {
	h := NewHost()
	if err := h.ConfigureOutput(18); err == nil {
		t.Fatal("ConfigureOutput succeeded before Open")
	}
}

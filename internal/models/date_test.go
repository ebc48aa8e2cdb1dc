package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPeriod(t *testing.T) {
	p, err := ParsePeriod("2025-02")
	if err != nil {
		t.Fatalf("ParsePeriod failed: %v", err)
	}
	if p.Label() != "February 2025" {
		t.Errorf("Label() = %q, want %q", p.Label(), "February 2025")
	}
	if got := p.Day(10).String(); got != "2025-02-10" {
		t.Errorf("Day(10) = %s, want 2025-02-10", got)
	}
	if got := p.Day(31).String(); got != "2025-02-28" {
		t.Errorf("Day(31) = %s, want 2025-02-28", got)
	}
	if p.String() != "2025-02" {
		t.Errorf("String() = %s, want 2025-02", p.String())
	}

	for _, bad := range []string{"", "2025", "2025-13", "February 2025"} {
		if _, err := ParsePeriod(bad); err == nil {
			t.Errorf("ParsePeriod(%q) expected error", bad)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 15)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-01-15"` {
		t.Errorf("Marshal = %s, want \"2024-01-15\"", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Errorf("Unmarshal = %s, want %s", back, d)
	}

	var empty Date
	if err := json.Unmarshal([]byte(`""`), &empty); err != nil {
		t.Fatalf("Unmarshal empty failed: %v", err)
	}
	if !empty.IsZero() {
		t.Errorf("expected zero date, got %s", empty)
	}
}

package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateOnlyJSON(t *testing.T) {
	d := Date(2025, time.March, 15)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2025-03-15"` {
		t.Fatalf("unexpected json %s", data)
	}

	var back DateOnly
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("roundtrip mismatch: %v != %v", back, d)
	}

	var zero DateOnly
	data, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero failed: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("expected null for zero date, got %s", data)
	}
}

func TestDateOnlyRejectsBadInput(t *testing.T) {
	var d DateOnly
	if err := json.Unmarshal([]byte(`"15/03/2025"`), &d); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestTimeOfDayJSON(t *testing.T) {
	c := Clock(14, 30)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"14:30"` {
		t.Fatalf("unexpected json %s", data)
	}

	var back TimeOfDay
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Format("15:04") != "14:30" {
		t.Fatalf("roundtrip mismatch: %v", back)
	}
}

func TestTimeOfDayScan(t *testing.T) {
	// TIME columns come back as HH:MM:SS strings from lib/pq.
	var c TimeOfDay
	if err := c.Scan("09:15:00"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if c.Format("15:04") != "09:15" {
		t.Fatalf("unexpected value %v", c)
	}

	if err := c.Scan([]byte("18:45:00")); err != nil {
		t.Fatalf("scan bytes failed: %v", err)
	}
	if c.Format("15:04") != "18:45" {
		t.Fatalf("unexpected value %v", c)
	}

	if err := c.Scan(12345); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}

func TestDateOnlyScan(t *testing.T) {
	var d DateOnly
	if err := d.Scan(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time failed: %v", err)
	}
	if d.Format("2006-01-02") != "2025-06-01" {
		t.Fatalf("unexpected value %v", d)
	}

	if err := d.Scan("2025-07-04"); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if d.Format("2006-01-02") != "2025-07-04" {
		t.Fatalf("unexpected value %v", d)
	}
}

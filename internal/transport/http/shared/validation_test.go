package shared

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-08-31")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := ParseDate("31/08/2026"); err == nil {
		t.Fatal("expected error for unsupported format")
	}

	got, err = ParseDate("")
	if err != nil || !got.IsZero() {
		t.Fatalf("empty input must yield zero time, got %v, %v", got, err)
	}
}

func TestValidatorCollectsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("name", "", "name is required")
	v.Enum("state", "Archived", []string{"Draft", "Approved", "Closed"}, "unknown state")
	if _, ok := v.Date("weekStart", "not-a-date"); ok {
		t.Fatal("expected invalid date")
	}

	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %+v", len(issues), issues)
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("weekStart", "2026-09-07")
	end, _ := v.Date("weekEnd", "2026-09-01")
	v.DateOrder("weekStart", start, "weekEnd", end)
	if !v.HasIssues() {
		t.Fatal("expected issues for inverted range")
	}
}

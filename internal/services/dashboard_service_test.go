package services

import (
	"testing"
	"time"

	"laundry-admin/internal/domain"
)

func TestResolveRangePresets(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.Local)

	from, to, label, err := resolveRange("today", "", "", now)
	if err != nil {
		t.Fatalf("today error: %v", err)
	}
	if label != "today" || from.Day() != 15 || to.Day() != 15 || from.Hour() != 0 || to.Hour() != 23 {
		t.Fatalf("today range wrong: %v .. %v (%s)", from, to, label)
	}

	from, to, label, err = resolveRange("", "", "", now)
	if err != nil {
		t.Fatalf("default error: %v", err)
	}
	if label != "week" {
		t.Fatalf("empty range should default to week, got %s", label)
	}
	if got := to.Sub(from); got < 6*24*time.Hour || got > 7*24*time.Hour {
		t.Fatalf("week span = %v", got)
	}

	if _, _, _, err := resolveRange("quarter", "", "", now); !domain.IsValidation(err) {
		t.Fatalf("unknown preset should be rejected, got %v", err)
	}
}

func TestResolveRangeCustom(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.Local)

	from, to, label, err := resolveRange("month", "2025-01-01", "2025-01-07", now)
	if err != nil {
		t.Fatalf("custom error: %v", err)
	}
	if label != "custom" {
		t.Fatalf("explicit dates must win over the preset, got %s", label)
	}
	if from.Hour() != 0 || to.Hour() != 23 || to.Day() != 7 {
		t.Fatalf("custom range not day-aligned: %v .. %v", from, to)
	}

	if _, _, _, err := resolveRange("", "2025-01-07", "2025-01-01", now); !domain.IsValidation(err) {
		t.Fatalf("inverted range should be rejected, got %v", err)
	}
	if _, _, _, err := resolveRange("", "bogus", "2025-01-01", now); !domain.IsValidation(err) {
		t.Fatalf("bad date should be rejected, got %v", err)
	}
}

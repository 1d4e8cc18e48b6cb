package meter

import (
	"testing"
	"time"
)

func TestResolveDateRangeEmpty(t *testing.T) {
	got, err := ResolveDateRange("", time.Now())
	if err != nil || got != "" {
		t.Fatalf("got %q err=%v, want empty/nil", got, err)
	}
}

func TestResolveDateRangeYesterday(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	got, err := ResolveDateRange("yesterday", now)
	if err != nil {
		t.Fatalf("ResolveDateRange: %v", err)
	}
	want := "26-03-14,00:00;26-03-15,00:00"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveDateRangeYesterdayCrossesMonthBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	got, err := ResolveDateRange("yesterday", now)
	if err != nil {
		t.Fatalf("ResolveDateRange: %v", err)
	}
	want := "26-02-28,00:00;26-03-01,00:00"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveDateRangeBareDate(t *testing.T) {
	got, err := ResolveDateRange("25-01-31", time.Now())
	if err != nil {
		t.Fatalf("ResolveDateRange: %v", err)
	}
	want := "25-01-31,00:00;25-02-01,00:00"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveDateRangeBareDateCrossesYearBoundary(t *testing.T) {
	got, err := ResolveDateRange("24-12-31", time.Now())
	if err != nil {
		t.Fatalf("ResolveDateRange: %v", err)
	}
	want := "24-12-31,00:00;25-01-01,00:00"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestResolveDateRangeFullRangePassthrough(t *testing.T) {
	literal := "25-01-31,12:45;25-02-01,00:00"
	got, err := ResolveDateRange(literal, time.Now())
	if err != nil {
		t.Fatalf("ResolveDateRange: %v", err)
	}
	if got != literal {
		t.Fatalf("got %q, want passthrough %q", got, literal)
	}
}

func TestResolveDateRangeUnrecognized(t *testing.T) {
	if _, err := ResolveDateRange("not-a-range", time.Now()); err == nil {
		t.Fatal("expected an error for an unrecognized literal")
	}
}

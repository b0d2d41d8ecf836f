package ads

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestPolicy_DrawBounds(t *testing.T) {
	p := NewPolicyWithSource(rand.NewSource(42))

	min := decimal.NewFromFloat(0.1)
	max := decimal.NewFromFloat(0.3)

	for i := 0; i < 1000; i++ {
		r := p.Draw()

		if r.SecondsEarned < 25 || r.SecondsEarned > 35 {
			t.Fatalf("SecondsEarned %d out of [25,35]", r.SecondsEarned)
		}
		if r.Revenue.LessThan(min) || r.Revenue.GreaterThan(max) {
			t.Fatalf("Revenue %s out of [0.1,0.3]", r.Revenue)
		}
		if r.Revenue.Exponent() < -4 {
			t.Fatalf("Revenue %s has more than 4 decimal places", r.Revenue)
		}
	}
}

func TestDayBoundsUTC(t *testing.T) {
	// 23:30 in UTC+8 is 15:30 UTC, still the same UTC day
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2024, 3, 5, 23, 30, 0, 0, loc)

	start, end := DayBoundsUTC(at)

	wantStart := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantStart.Add(24 * time.Hour)) {
		t.Errorf("end = %v, want %v", end, wantStart.Add(24*time.Hour))
	}

	if !at.UTC().After(start) || !at.UTC().Before(end) {
		t.Error("timestamp should fall inside its own day bounds")
	}
}

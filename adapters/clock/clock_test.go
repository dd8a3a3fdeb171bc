package clock_test

import (
	"testing"
	"time"

	"github.com/artpar/actionkit/adapters/clock"
)

func TestReal_Now(t *testing.T) {
	c := clock.Real{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", got, before, after)
	}
}

func TestFake(t *testing.T) {
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	c := clock.NewFake(fixed)

	if got := c.Now(); !got.Equal(fixed) {
		t.Errorf("Now() = %v, want %v", got, fixed)
	}

	c.Advance(2 * time.Hour)
	if got := c.Now(); !got.Equal(fixed.Add(2 * time.Hour)) {
		t.Errorf("after Advance: %v", got)
	}

	reset := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(reset)
	if got := c.Now(); !got.Equal(reset) {
		t.Errorf("after Set: %v", got)
	}
}

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestPacerDisabled(t *testing.T) {
	pacer := NewPacer(0, zerolog.Nop())

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := pacer.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled pacer took %v, expected no delay", elapsed)
	}
}

func TestPacerSpacesRequests(t *testing.T) {
	interval := 40 * time.Millisecond
	pacer := NewPacer(interval, zerolog.Nop())
	ctx := context.Background()

	// First call goes through immediately, the next two queue up.
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("Wait %d failed: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if elapsed < 2*interval-10*time.Millisecond {
		t.Errorf("3 paced requests took %v, want at least ~%v", elapsed, 2*interval)
	}
}

func TestPacerContextCancellation(t *testing.T) {
	pacer := NewPacer(time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	cancel()
	if err := pacer.Wait(ctx); err == nil {
		t.Error("Wait with cancelled context should fail")
	}
}

func TestPacerInterval(t *testing.T) {
	pacer := NewPacer(200*time.Millisecond, zerolog.Nop())
	if got := pacer.Interval(); got != 200*time.Millisecond {
		t.Errorf("Interval() = %v, want 200ms", got)
	}
}

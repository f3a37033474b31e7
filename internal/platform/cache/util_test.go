package cache

import (
	"testing"
	"time"
)

func TestTimeUntilNextClose(t *testing.T) {
	t.Parallel()

	duration := TimeUntilNextClose()

	// Duration should always be positive and less than 24 hours
	if duration <= 0 {
		t.Errorf("expected positive duration, got %v", duration)
	}
	if duration > 24*time.Hour {
		t.Errorf("expected duration less than 24 hours, got %v", duration)
	}
}

func TestTimeUntilNextClose_ReturnsValidDuration(t *testing.T) {
	t.Parallel()

	duration := TimeUntilNextClose()

	now := time.Now()
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("failed to load Asia/Shanghai timezone: %v", err)
	}

	nextClose := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 15, 0, 0, 0, loc)
	if now.In(loc).After(nextClose) {
		nextClose = nextClose.Add(24 * time.Hour)
	}

	expected := nextClose.Sub(now)
	diff := expected - duration
	if diff < 0 {
		diff = -diff
	}
	if diff > time.Second {
		t.Errorf("expected approximately %v, got %v", expected, duration)
	}
}

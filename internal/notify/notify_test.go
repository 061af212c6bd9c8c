package notify

import (
	"testing"
	"time"
)

func TestMessagesExpireAfterTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	center := NewCenterWithClock(func() time.Time { return now })

	center.Post(KindError, "failed to update quantity", 3*time.Second)
	center.Post(KindError, "address save failed", 5*time.Second)

	if got := len(center.Active()); got != 2 {
		t.Fatalf("expected 2 active messages, got %d", got)
	}

	now = now.Add(3 * time.Second)
	active := center.Active()
	if len(active) != 1 {
		t.Fatalf("cart banner should expire at 3s, got %d messages", len(active))
	}
	if active[0].Text != "address save failed" {
		t.Fatalf("wrong survivor: %q", active[0].Text)
	}

	now = now.Add(2 * time.Second)
	if got := len(center.Active()); got != 0 {
		t.Fatalf("form banner should expire at 5s, got %d", got)
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	now := time.Unix(1000, 0)
	center := NewCenterWithClock(func() time.Time { return now })
	center.Post(KindInfo, "sticky", 0)

	now = now.Add(24 * time.Hour)
	if got := len(center.Active()); got != 1 {
		t.Fatalf("zero-ttl message should persist, got %d", got)
	}

	center.Dismiss()
	if got := len(center.Active()); got != 0 {
		t.Fatalf("dismiss should clear everything, got %d", got)
	}
}

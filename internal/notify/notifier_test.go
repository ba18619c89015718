package notify

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
	"smartshop/internal/clock/clocktest"
	"smartshop/pkg/domain"
)

type recordingDisplay struct {
	mu      sync.Mutex
	shown   []Notification
	removed []Notification
}

func (d *recordingDisplay) Show(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shown = append(d.shown, n)
}

func (d *recordingDisplay) Remove(n Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removed = append(d.removed, n)
}

func TestNotificationExpiresAfterExactlyFiveSeconds(t *testing.T) {
	clk := clocktest.New()
	display := &recordingDisplay{}
	n := New(Config{Display: display, Clock: clk})

	note := n.Show("Login failed: boom", domain.SeverityError)
	if len(display.shown) != 1 || display.shown[0].ID != note.ID {
		t.Fatalf("expected notification shown, got %+v", display.shown)
	}

	clk.Advance(4999 * time.Millisecond)
	if len(display.removed) != 0 {
		t.Fatalf("notification removed before 5000ms")
	}
	if got := n.Active(); len(got) != 1 {
		t.Fatalf("expected 1 active notification, got %d", len(got))
	}

	clk.Advance(time.Millisecond)
	if len(display.removed) != 1 || display.removed[0].ID != note.ID {
		t.Fatalf("expected removal at 5000ms, got %+v", display.removed)
	}
	if got := n.Active(); len(got) != 0 {
		t.Fatalf("expected no active notifications, got %d", len(got))
	}
}

func TestNotificationsCoexistAndExpireIndependently(t *testing.T) {
	clk := clocktest.New()
	n := New(Config{Clock: clk})

	first := n.Show("one", domain.SeverityInfo)
	clk.Advance(2 * time.Second)
	second := n.Show("one", domain.SeverityInfo)

	active := n.Active()
	if len(active) != 2 || active[0].ID != first.ID || active[1].ID != second.ID {
		t.Fatalf("expected both notifications in order, got %+v", active)
	}
	if first.ID == second.ID {
		t.Fatalf("duplicate messages must get distinct ids")
	}

	clk.Advance(3 * time.Second)
	active = n.Active()
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("expected only second notification, got %+v", active)
	}
	clk.Advance(2 * time.Second)
	if len(n.Active()) != 0 {
		t.Fatalf("expected all notifications expired")
	}
}

func TestShowDefaultsUnknownSeverityToInfo(t *testing.T) {
	n := New(Config{Clock: clocktest.New()})
	if got := n.Show("hi", "").Severity; got != domain.SeverityInfo {
		t.Fatalf("severity = %q, want info", got)
	}
	if got := n.Show("hi", "fatal").Severity; got != domain.SeverityInfo {
		t.Fatalf("severity = %q, want info", got)
	}
	if got := n.Show("hi", domain.SeverityWarning).Severity; got != domain.SeverityWarning {
		t.Fatalf("severity = %q, want warning", got)
	}
}

func TestRealClockExpiry(t *testing.T) {
	defer goleak.VerifyNone(t)

	display := &recordingDisplay{}
	n := New(Config{Display: display, Duration: 20 * time.Millisecond})
	n.Show("short", domain.SeverityInfo)

	removed := func() int {
		display.mu.Lock()
		defer display.mu.Unlock()
		return len(display.removed)
	}
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && removed() == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	if removed() != 1 {
		t.Fatalf("expected one removal on the real clock, got %d", removed())
	}
	if len(n.Active()) != 0 {
		t.Fatalf("expected no active notifications after expiry")
	}
}

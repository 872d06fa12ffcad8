package config

import (
	"testing"
	"time"
)

func TestFixTimestamp_Format(t *testing.T) {
	ts := time.Date(2024, 12, 1, 10, 30, 45, 123000000, time.UTC)
	got := FixTimestamp(ts)
	want := "20241201-10:30:45.123"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestSystemClock_ReturnsUTC(t *testing.T) {
	now := SystemClock{}.NowUTC()
	if now.Location() != time.UTC {
		t.Fatalf("expected UTC location, got %v", now.Location())
	}
}

func TestNopLogger_DoesNotPanic(t *testing.T) {
	var l Logger = NopLogger{}
	l.Infof("hello %s", "world")
	l = l.WithField("session", "abc")
	l.Errorf("boom")
}

func TestNewLogrusLogger_NilUsesDefault(t *testing.T) {
	l := NewLogrusLogger(nil)
	if l == nil {
		t.Fatalf("expected a non-nil logger")
	}
	l.WithField("k", "v").Debugf("test")
}

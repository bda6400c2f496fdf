package core

import (
	"errors"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{" INFO ", InfoLevel, false},
		{"warn", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidLogLevel) {
					t.Fatalf("err = %v, want ErrInvalidLogLevel", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, %v", tt.in, got, err)
			}
		})
	}
}

func TestShortID(t *testing.T) {
	id := NewSessionID()
	if len(id) != 36 {
		t.Fatalf("session id %q", id)
	}
	if got := ShortID(id); got != id[:8] {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(abc) = %q", got)
	}
	if NewSessionID() == id {
		t.Error("session ids repeat")
	}
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < 61; i++ {
		m.Update(1.0 / 60.0)
	}
	fps, ms := m.Frame()
	if fps < 59 || fps > 61 {
		t.Errorf("fps = %v", fps)
	}
	if ms < 16 || ms > 17 {
		t.Errorf("ms = %v", ms)
	}
}

package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{"DEBUG", zerolog.DebugLevel, true},
		{" warn ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"verbose", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := parseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseLevel(%q): got=(%v,%v) want=(%v,%v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestNewAppliesProfileAndEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	if lg := New("auroractl", ProfileTest); lg.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("test profile level: got=%v", lg.GetLevel())
	}
	t.Setenv(EnvLogLevel, "error")
	if lg := New("auroractl", ProfileRuntime); lg.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("env override level: got=%v", lg.GetLevel())
	}
}

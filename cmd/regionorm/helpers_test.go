package main

import (
	"strings"
	"testing"

	"regionorm/internal/observ"
)

func TestBalanced(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"fn f(x: &u8) -> &u8;\n", true},
		{"impl Foo {\n", false},
		{"impl Foo {\n    fn f(&self);\n}\n", true},
		{"fn f(\n", false},
		{"fn f(x: [&u8; 2]);\n", true},
		{"impl Foo { // }\n", false},
		{"}\n", true},
	}
	for _, tc := range cases {
		if got := balanced(tc.src); got != tc.want {
			t.Errorf("balanced(%q) = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes must win over terminal detection")
	}
}

func TestColorEnabled(t *testing.T) {
	if on, err := colorEnabled("on", nil); err != nil || !on {
		t.Errorf("on: %v %v", on, err)
	}
	if on, err := colorEnabled("off", nil); err != nil || on {
		t.Errorf("off: %v %v", on, err)
	}
	if _, err := colorEnabled("rainbow", nil); err == nil {
		t.Error("expected an error for an unknown value")
	}
}

func TestFormatTimings(t *testing.T) {
	if got := formatTimings(observ.Report{}); got != "" {
		t.Errorf("empty report rendered as %q", got)
	}
	got := formatTimings(observ.Report{
		TotalMS: 3,
		Phases: []observ.PhaseReport{
			{Name: "parse", DurationMS: 1, Note: "2 files"},
			{Name: "normalize", DurationMS: 2},
		},
	})
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.Contains(lines[1], "parse") || !strings.Contains(lines[1], "(2 files)") {
		t.Errorf("parse line = %q", lines[1])
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[3]), "total") {
		t.Errorf("total line = %q", lines[3])
	}
}

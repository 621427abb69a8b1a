package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunSumBasic(t *testing.T) {
	prec, roundStr, legacy = 53, "nearest", false
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"1.5", "2.5"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := strings.TrimSpace(out.String())
	want := "4"
	if !strings.HasPrefix(got, want) {
		t.Fatalf("output %q does not start with %q", got, want)
	}
}

func TestParseRoundingModeRejectsUnknown(t *testing.T) {
	if _, err := parseRoundingMode("sideways"); err == nil {
		t.Fatal("expected an error for an unrecognized rounding mode")
	}
}

func TestParseRoundingModeAllNamed(t *testing.T) {
	names := []string{"nearest", "zero", "up", "down", "away"}
	seen := map[string]bool{}
	for _, n := range names {
		mode, err := parseRoundingMode(n)
		if err != nil {
			t.Fatalf("parseRoundingMode(%q): %v", n, err)
		}
		seen[n] = true
		_ = mode
	}
	if diff := cmp.Diff(len(names), len(seen)); diff != "" {
		t.Fatalf("duplicate rounding mode name (-want +got):\n%s", diff)
	}
}

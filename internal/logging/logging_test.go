package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestGetLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    logrus.Level
		wantErr bool
	}{
		{"", logrus.InfoLevel, false},
		{"DEBUG", logrus.DebugLevel, false},
		{"warn", logrus.WarnLevel, false},
		{"error", logrus.ErrorLevel, false},
		{"loud", logrus.DebugLevel, true},
	}
	for _, tc := range cases {
		got, err := GetLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Fatalf("GetLevel(%q) err=%v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("GetLevel(%q)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", "text")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.WithFields(logrus.Fields{"table": "t1", "edits": 4}).WithError(errors.New("boom")).Debug("merged")

	want := "[DEBUG] merged\n  edits = 4\n  error = \"boom\"\n  table = \"t1\"\n\n"
	if got := buf.String(); got != want {
		t.Fatalf("output=%q, want %q", got, want)
	}
}

func TestNew_JSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	l.Info("dropped")
	l.WithField("table", "t1").Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info entry written at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"table":"t1"`) {
		t.Fatalf("unexpected output: %s", out)
	}

	if _, err := New(&buf, "loud", "json"); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

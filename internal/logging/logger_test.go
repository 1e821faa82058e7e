package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"", logrus.WarnLevel},
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"error", logrus.ErrorLevel},
	}

	for _, tt := range tests {
		logger, err := New(tt.level, FormatText, &bytes.Buffer{})
		if err != nil {
			t.Fatalf("New(%q) failed: %v", tt.level, err)
		}
		if logger.GetLevel() != tt.want {
			t.Errorf("New(%q) level = %v, want %v", tt.level, logger.GetLevel(), tt.want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("loud", FormatText, nil); err == nil {
		t.Error("New with unknown level succeeded")
	}
	if _, err := New("info", "xml", nil); err == nil {
		t.Error("New with unknown format succeeded")
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", FormatText, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithField("file", "LevelInfo.bin").Info("saved")
	logger.Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "msg=saved") || !strings.Contains(out, "file=LevelInfo.bin") {
		t.Errorf("unexpected output: %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", FormatJSON, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.WithField("worlds", 3).Warn("duplicate world number")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "duplicate world number" || entry["level"] != "warning" {
		t.Errorf("entry = %v", entry)
	}
	if entry["worlds"] != float64(3) {
		t.Errorf("worlds = %v, want 3", entry["worlds"])
	}
}

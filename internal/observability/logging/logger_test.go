package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLoggerTagsRecordsWithService(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "lexova-api", "info")

	logger.Info("case_submitted", "case_id", "case-1")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v\n%s", err, buf.String())
	}
	if record["service"] != "lexova-api" {
		t.Fatalf("service = %v, want lexova-api", record["service"])
	}
	if record["msg"] != "case_submitted" {
		t.Fatalf("msg = %v", record["msg"])
	}
	if record["case_id"] != "case-1" {
		t.Fatalf("case_id = %v", record["case_id"])
	}
}

func TestLoggerLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "lexova-worker", "warn")

	logger.Debug("suppressed")
	logger.Info("suppressed too")
	logger.Warn("kept")

	if bytes.Contains(buf.Bytes(), []byte("suppressed")) {
		t.Fatalf("records below warn leaked:\n%s", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("kept")) {
		t.Fatalf("warn record missing:\n%s", buf.String())
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	for raw, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	} {
		if got := parseLevel(raw); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

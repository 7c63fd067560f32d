package logrus

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestLogrusLogger_EmitsJSONWithFields(t *testing.T) {
	logger := NewLogrusLogger()

	var buf bytes.Buffer
	logger.logger.SetOutput(&buf)

	logger.Info("Search job completed", map[string]interface{}{
		"job_id":  3,
		"results": 12,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "Search job completed" {
		t.Errorf("msg = %v, want the log message", entry["msg"])
	}
	if entry["job_id"] != float64(3) {
		t.Errorf("job_id = %v, want 3", entry["job_id"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestLogrusLogger_NilFields(t *testing.T) {
	logger := NewLogrusLogger()

	var buf bytes.Buffer
	logger.logger.SetOutput(&buf)

	logger.Warn("Source unavailable", nil)

	if buf.Len() == 0 {
		t.Error("logging with nil fields should still emit a line")
	}
}

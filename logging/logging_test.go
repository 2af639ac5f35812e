package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/indieinfra/mockmedia/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		debug bool
		want  logrus.Level
	}{
		{"configured level", "warn", false, logrus.WarnLevel},
		{"unknown level falls back to info", "loud", false, logrus.InfoLevel},
		{"empty level falls back to info", "", false, logrus.InfoLevel},
		{"debug flag wins", "error", true, logrus.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logger := New(config.Log{Level: tc.level}, tc.debug)
			if logger.GetLevel() != tc.want {
				t.Fatalf("level = %v, want %v", logger.GetLevel(), tc.want)
			}
		})
	}
}

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "mockmedia.log")

	logger := New(config.Log{Level: "info", File: file, MaxSize: 1}, false)
	logger.Infof("stored %s", "media_1")

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("expected log file to be written: %v", err)
	}
	if !strings.Contains(string(data), "stored media_1") {
		t.Fatalf("unexpected log contents: %q", string(data))
	}
}

func TestDiscardSatisfiesLogger(t *testing.T) {
	var l Logger = Discard()
	l.Debugf("nothing %d", 1)
	l.Errorf("nothing %d", 2)
}

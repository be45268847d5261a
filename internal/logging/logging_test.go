package logging

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"verbose", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level, "json")
			if logger.GetLevel() != tt.expected {
				t.Errorf("GetLevel() = %v, expected %v", logger.GetLevel(), tt.expected)
			}
		})
	}
}

func TestNewFormatters(t *testing.T) {
	logger := New("info", "text")
	if _, ok := logger.Formatter.(*logrus.TextFormatter); !ok {
		t.Errorf("Formatter = %T, expected *logrus.TextFormatter", logger.Formatter)
	}

	logger = New("info", "json")
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Formatter = %T, expected *logrus.JSONFormatter", logger.Formatter)
	}

	logger = New("info", "xml")
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Formatter = %T, expected *logrus.JSONFormatter fallback", logger.Formatter)
	}
}

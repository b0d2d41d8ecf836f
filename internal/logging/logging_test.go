package logging

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "JSON format to stdout",
			config: Config{
				Level:  "info",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
		{
			name: "Console format to stderr",
			config: Config{
				Level:  "debug",
				Format: "console",
				Output: "stderr",
			},
			wantErr: false,
		},
		{
			name: "Invalid log level defaults to info",
			config: Config{
				Level:  "invalid",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("Expected non-nil logger")
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	logger, err := NewLogger(Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	// None of these should panic
	logger.Info("test info message")
	logger.Debug("test debug message")
	logger.Warn("test warn message")
	logger.Error("test error message")
	logger.Infof("formatted %d", 1)
	logger.ErrorWithErr("with error", errors.New("boom"))
}

func TestLoggerWithFields(t *testing.T) {
	logger, err := NewDefaultLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	if logger.WithField("key", "value") == nil {
		t.Error("Expected non-nil logger from WithField")
	}
	if logger.WithUserID("user-1") == nil {
		t.Error("Expected non-nil logger from WithUserID")
	}
	if logger.WithJobID("job-1") == nil {
		t.Error("Expected non-nil logger from WithJobID")
	}
}

func TestDomainLogHelpers(t *testing.T) {
	logger, err := NewDefaultLogger()
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	logger.LogAuditEvent("user-1", "ad_watched", "earned 30 seconds")
	logger.LogJobEvent("job-1", "submitted", "pending", map[string]interface{}{
		"seconds_used": 15,
	})
	logger.LogSegmentOutcome("job-1", 1, "completed", 2*time.Second, nil)
	logger.LogSegmentOutcome("job-1", 2, "failed", time.Second, errors.New("provider timeout"))
	logger.LogLedgerMovement("user-1", "recharge", 300, decimal.NewFromInt(5))
}

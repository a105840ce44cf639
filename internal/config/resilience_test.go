package config

import (
	"testing"
	"time"
)

func TestDefaultResilienceConfig(t *testing.T) {
	// Test SheetRead defaults
	if DefaultResilienceConfig.SheetRead.MaxAttempts != 3 {
		t.Errorf("Expected default SheetRead MaxAttempts 3, got %d", DefaultResilienceConfig.SheetRead.MaxAttempts)
	}

	if DefaultResilienceConfig.SheetRead.InitialWait != 500*time.Millisecond {
		t.Errorf("Expected default SheetRead InitialWait 500ms, got %v", DefaultResilienceConfig.SheetRead.InitialWait)
	}

	if DefaultResilienceConfig.SheetRead.MaxWait != 5*time.Second {
		t.Errorf("Expected default SheetRead MaxWait 5s, got %v", DefaultResilienceConfig.SheetRead.MaxWait)
	}

	if DefaultResilienceConfig.SheetRead.Multiplier != 2.0 {
		t.Errorf("Expected default SheetRead Multiplier 2.0, got %f", DefaultResilienceConfig.SheetRead.Multiplier)
	}

	if DefaultResilienceConfig.SheetRead.Timeout != 30*time.Second {
		t.Errorf("Expected default SheetRead Timeout 30s, got %v", DefaultResilienceConfig.SheetRead.Timeout)
	}

	// Test SheetWrite defaults
	if DefaultResilienceConfig.SheetWrite.MaxAttempts != 3 {
		t.Errorf("Expected default SheetWrite MaxAttempts 3, got %d", DefaultResilienceConfig.SheetWrite.MaxAttempts)
	}

	if DefaultResilienceConfig.SheetWrite.InitialWait != 1*time.Second {
		t.Errorf("Expected default SheetWrite InitialWait 1s, got %v", DefaultResilienceConfig.SheetWrite.InitialWait)
	}

	if DefaultResilienceConfig.SheetWrite.MaxWait != 10*time.Second {
		t.Errorf("Expected default SheetWrite MaxWait 10s, got %v", DefaultResilienceConfig.SheetWrite.MaxWait)
	}

	if DefaultResilienceConfig.SheetWrite.Multiplier != 2.0 {
		t.Errorf("Expected default SheetWrite Multiplier 2.0, got %f", DefaultResilienceConfig.SheetWrite.Multiplier)
	}

	if DefaultResilienceConfig.SheetWrite.Timeout != 30*time.Second {
		t.Errorf("Expected default SheetWrite Timeout 30s, got %v", DefaultResilienceConfig.SheetWrite.Timeout)
	}
}

func TestDefaultResilienceConfigImmutability(t *testing.T) {
	original := DefaultResilienceConfig

	modified := DefaultResilienceConfig
	modified.SheetWrite.MaxAttempts = 999

	if DefaultResilienceConfig.SheetWrite.MaxAttempts != original.SheetWrite.MaxAttempts {
		t.Error("DefaultResilienceConfig was unexpectedly modified")
	}
}

func TestAttempts(t *testing.T) {
	testCases := []struct {
		name     string
		config   RetryConfig
		expected int
	}{
		{"zero", RetryConfig{}, 1},
		{"negative", RetryConfig{MaxAttempts: -2}, 1},
		{"configured", RetryConfig{MaxAttempts: 4}, 4},
		{"no retry", NoRetry.SheetRead, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.config.Attempts(); got != tc.expected {
				t.Errorf("Expected %d attempts, got %d", tc.expected, got)
			}
		})
	}
}

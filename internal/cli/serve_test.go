package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/placement-portal/quiz-api/internal/config"
)

func TestWriteTimeout(t *testing.T) {
	tests := []struct {
		name string
		ai   config.AI
		want time.Duration
	}{
		{"NoRetries", config.AI{Timeout: 30 * time.Second, RetryDelay: time.Second}, 46 * time.Second},
		{"OneRetry", config.AI{Timeout: 30 * time.Second, MaxRetries: 1, RetryDelay: 500 * time.Millisecond}, 76 * time.Second},
		{"ThreeRetries", config.AI{Timeout: 10 * time.Second, MaxRetries: 3, RetryDelay: 2 * time.Second}, 63 * time.Second},
		{"NegativeRetries", config.AI{Timeout: 5 * time.Second, MaxRetries: -2}, 20 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, writeTimeout(tt.ai))
		})
	}
}

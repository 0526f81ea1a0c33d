package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviechain/internal/common/errors"
)

func newTestClient(maxRetries int) *Client {
	return &Client{config: &ClientConfig{
		ConnectionTimeout: time.Second,
		RetryConfig: &RetryConfig{
			MaxRetries: maxRetries,
			BaseDelay:  time.Millisecond,
			MaxDelay:   2 * time.Millisecond,
		},
	}}
}

func TestIsRetryableZeebeError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"rpc error: code = Unavailable desc = connection refused", true},
		{"context deadline exceeded", true},
		{"write: broken pipe", true},
		{"rpc error: code = NotFound desc = job not found", false},
		{"invalid argument", false},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableZeebeError(stderrors.New(tt.msg)))
		})
	}
}

func TestExecuteWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	c := newTestClient(3)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return stderrors.New("connection refused")
		}
		return nil
	}, "topology")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteWithRetry_GivesUp(t *testing.T) {
	c := newTestClient(2)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("unavailable")
	}, "topology")

	assert.Equal(t, 3, calls)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrorCode("EXTERNAL_SERVICE_ERROR"), stdErr.Code)
	assert.Contains(t, stdErr.Details, "after 3 attempts")
}

func TestExecuteWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	c := newTestClient(5)
	calls := 0

	err := c.ExecuteWithRetry(context.Background(), func(context.Context) error {
		calls++
		return stderrors.New("process not found")
	}, "deploy")

	assert.Equal(t, 1, calls)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrorCode("RESOURCE_NOT_FOUND"), stdErr.Code)
}

func TestExecuteWithRetry_ContextCancelled(t *testing.T) {
	c := newTestClient(5)
	c.config.RetryConfig.BaseDelay = time.Hour
	c.config.RetryConfig.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	err := c.ExecuteWithRetry(ctx, func(context.Context) error {
		cancel()
		return stderrors.New("timeout")
	}, "topology")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestMapZeebeError_Timeout(t *testing.T) {
	err := mapZeebeError(stderrors.New("deadline exceeded"), "complete", 0)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrorCode("TIMEOUT_ERROR"), stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDoer struct {
	mock.Mock
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

var fastPolicy = RetryPolicy{MaxAttempts: 3, InitialBackoff: time.Millisecond}

func newGet(t *testing.T) func() (*http.Request, error) {
	t.Helper()
	return func() (*http.Request, error) {
		return http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.test/x", nil)
	}
}

func TestDoWithRetry_RetriesServerErrors(t *testing.T) {
	doer := &mockDoer{}
	doer.On("Do", mock.AnythingOfType("*http.Request")).Return(response(503, "busy"), nil).Twice()
	doer.On("Do", mock.AnythingOfType("*http.Request")).Return(response(200, "ok"), nil).Once()

	resp, err := DoWithRetry(context.Background(), doer, fastPolicy, newGet(t))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	doer.AssertNumberOfCalls(t, "Do", 3)
}

func TestDoWithRetry_DoesNotRetryClientErrors(t *testing.T) {
	doer := &mockDoer{}
	doer.On("Do", mock.AnythingOfType("*http.Request")).Return(response(404, "nope"), nil)

	_, err := DoWithRetry(context.Background(), doer, fastPolicy, newGet(t))
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 404, se.Code)
	assert.Equal(t, "nope", se.Body)
	doer.AssertNumberOfCalls(t, "Do", 1)
}

func TestDoWithRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	doer := &mockDoer{}
	doer.On("Do", mock.AnythingOfType("*http.Request")).Return(response(429, "slow down"), nil)

	_, err := DoWithRetry(context.Background(), doer, fastPolicy, newGet(t))
	require.Error(t, err)
	doer.AssertNumberOfCalls(t, "Do", 3)
}

func TestDoWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	doer := &mockDoer{}
	_, err := DoWithRetry(ctx, doer, fastPolicy, newGet(t))
	assert.ErrorIs(t, err, context.Canceled)
	doer.AssertNotCalled(t, "Do", mock.Anything)
}

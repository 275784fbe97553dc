package csfd_test

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mhavel/csfd/internal/csfd"
	"github.com/mhavel/csfd/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fastConfig keeps the retry tests quick: the rate limiter interval is
// negligible and backoff delays are in the single milliseconds.
var fastConfig = csfd.Config{
	RequestsPerSecond: 1000,
	MaxRetries:        2,
	RetryBaseDelay:    time.Millisecond,
}

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestFetchSuccess(t *testing.T) {
	t.Parallel()

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "https://www.csfd.cz/film/300706/prehled/", req.URL.String())
		assert.NotEmpty(t, req.Header.Get("User-Agent"))
		assert.Equal(t, "cs-CZ,cs;q=0.9,en;q=0.8", req.Header.Get("Accept-Language"))
		return httpResponse(http.StatusOK, "<html></html>"), nil
	})

	client := csfd.NewClientWithDoer(fastConfig, doer)

	body, err := client.Fetch(t.Context(), "/film/300706/prehled/")
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", body)
}

func TestFetchNotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
		return httpResponse(http.StatusNotFound, ""), nil
	}).Times(1)

	client := csfd.NewClientWithDoer(fastConfig, doer)

	_, err := client.Fetch(t.Context(), "/film/1/prehled/")
	var notFound *csfd.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "https://www.csfd.cz/film/1/prehled/", notFound.URL)
}

func TestFetchRateLimitedAfterRetries(t *testing.T) {
	t.Parallel()

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	// 1 initial attempt + MaxRetries retries
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
		return httpResponse(http.StatusTooManyRequests, ""), nil
	}).Times(3)

	client := csfd.NewClientWithDoer(fastConfig, doer)

	_, err := client.Fetch(t.Context(), "/hledat/?q=test")
	assert.ErrorIs(t, err, csfd.ErrRateLimited)
}

func TestFetchRetriesServerError(t *testing.T) {
	t.Parallel()

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	gomock.InOrder(
		doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
			return httpResponse(http.StatusInternalServerError, ""), nil
		}),
		doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
			return httpResponse(http.StatusOK, "ok"), nil
		}),
	)

	client := csfd.NewClientWithDoer(fastConfig, doer)

	body, err := client.Fetch(t.Context(), "/film/1/prehled/")
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
}

func TestFetchRetriesTransportError(t *testing.T) {
	t.Parallel()

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	gomock.InOrder(
		doer.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection reset")),
		doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
			return httpResponse(http.StatusOK, "ok"), nil
		}),
	)

	client := csfd.NewClientWithDoer(fastConfig, doer)

	body, err := client.Fetch(t.Context(), "/film/1/prehled/")
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
}

func TestFetchClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
		return httpResponse(http.StatusForbidden, ""), nil
	}).Times(1)

	client := csfd.NewClientWithDoer(fastConfig, doer)

	_, err := client.Fetch(t.Context(), "/film/1/prehled/")
	var statusErr *csfd.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestFetchBackoffSchedule(t *testing.T) {
	t.Parallel()

	cfg := csfd.Config{
		RequestsPerSecond: 1000,
		MaxRetries:        3,
		RetryBaseDelay:    10 * time.Millisecond,
	}

	mockctrl := gomock.NewController(t)
	t.Cleanup(mockctrl.Finish)

	doer := mocks.NewMockDoer(mockctrl)
	doer.EXPECT().Do(gomock.Any()).DoAndReturn(func(_ *http.Request) (*http.Response, error) {
		return httpResponse(http.StatusServiceUnavailable, ""), nil
	}).Times(4)

	client := csfd.NewClientWithDoer(cfg, doer)

	// Backoff before retries: 10ms + 20ms + 40ms
	start := time.Now()
	_, err := client.Fetch(t.Context(), "/film/1/prehled/")
	elapsed := time.Since(start)

	var statusErr *csfd.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.GreaterOrEqual(t, elapsed, 70*time.Millisecond)
}

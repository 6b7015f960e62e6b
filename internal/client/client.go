// Package client talks to both catalogs over HTTP: the search catalog through
// SearchClient and the user's source catalog account through SourceClient.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Belphemur/filmed/internal/config"
	"github.com/Belphemur/filmed/internal/metrics"
	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/retrypolicy"
	"github.com/failsafe-go/failsafe-go/timeout"
	"golang.org/x/time/rate"
)

// Catalog labels used in metrics and logs.
const (
	catalogSearch = "search"
	catalogSource = "source"
)

const (
	maxRetries   = 2
	retryBackoff = 250 * time.Millisecond
	maxBackoff   = 5 * time.Second
)

// transportOptions describes one HTTP client of a catalog.
type transportOptions struct {
	catalog string
	rps     float64 // Requests per second, 0 disables limiting
	limiter *rate.Limiter
	header  http.Header // Added to every request
}

// newHTTPClient builds the transport chain shared by both catalogs:
// failsafe policies → rate limit → fixed headers → decompression → base transport.
// The base transport clones http.DefaultTransport and applies the configured proxy.
func newHTTPClient(cfg *config.Config, opts transportOptions) *http.Client {
	logger := config.GetLogger()

	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	var rt http.RoundTripper = newCompressionTransport(baseTransport)
	if len(opts.header) > 0 {
		rt = &headerTransport{transport: rt, header: opts.header}
	}
	limiter := opts.limiter
	if limiter == nil && opts.rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.rps), 1)
	}
	if limiter != nil {
		rt = &rateLimitTransport{transport: rt, limiter: limiter}
	}
	rt = &countingTransport{transport: rt, catalog: opts.catalog}

	return &http.Client{
		Transport: failsafehttp.NewRoundTripper(rt, policies(cfg, opts.catalog)...),
	}
}

// policies returns, outermost first, a retry policy for transient failures,
// a circuit breaker shared by every request of the client, and a per-attempt timeout.
func policies(cfg *config.Config, catalog string) []failsafe.Policy[*http.Response] {
	logger := config.GetLogger()

	retry := retrypolicy.NewBuilder[*http.Response]().
		HandleIf(shouldRetry).
		WithBackoff(retryBackoff, maxBackoff).
		WithMaxRetries(maxRetries).
		ReturnLastFailure().
		Build()

	threshold := cfg.Breaker.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	breaker := circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(shouldRetry).
		WithFailureThreshold(threshold).
		WithDelay(cfg.BreakerDelay()).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			metrics.BreakerTransitionsTotal.WithLabelValues(catalog, e.NewState.String()).Inc()
			logger.Warn().Str("catalog", catalog).Str("from", e.OldState.String()).Str("to", e.NewState.String()).Msg("Circuit breaker changed state")
		}).
		Build()

	return []failsafe.Policy[*http.Response]{
		retry,
		breaker,
		timeout.New[*http.Response](cfg.Timeout()),
	}
}

// shouldRetry treats transport errors, throttling and server errors as failures.
func shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return resp != nil && retryableStatus(resp.StatusCode)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// headerTransport sets fixed headers (session cookies, locale) on every request.
type headerTransport struct {
	transport http.RoundTripper
	header    http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.header {
		req.Header[k] = append([]string(nil), v...)
	}
	return t.transport.RoundTrip(req)
}

// rateLimitTransport waits for a token before each attempt, retries included.
type rateLimitTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

// countingTransport counts attempts by status code ("error" for transport failures).
type countingTransport struct {
	transport http.RoundTripper
	catalog   string
}

func (t *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.transport.RoundTrip(req)
	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	metrics.HTTPRequestsTotal.WithLabelValues(t.catalog, code).Inc()
	return resp, err
}

// fetch performs a GET and returns the body of a 200 response.
func fetch(ctx context.Context, httpClient *http.Client, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", config.GetUserAgent())

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: pageURL, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

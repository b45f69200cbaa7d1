package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/clima-ecuador/internal/weather"
)

// HTTPClientConfig bundles the outbound client and its guards. Requests are
// never retried: a failed call is reported once and the dashboard keeps its
// previous data.
type HTTPClientConfig struct {
	Client  *resty.Client
	Limiter *rate.Limiter
}

var (
	errUpstreamStatus = errors.New("unexpected status code")
	errNoHTTPClient   = errors.New("http client not configured")
)

// NewRestyClient builds the shared client used by every provider.
func NewRestyClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
}

// statusError is a non-2xx reply from a provider.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d: %s", errUpstreamStatus, e.code, e.body)
}

func (e *statusError) Is(target error) bool {
	return target == errUpstreamStatus
}

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: providerHealthy,
	})
}

// providerHealthy tells the breaker whether a call says anything about the
// provider's health. A 4xx answer ("city not found", bad key) is about the
// request, so it never counts towards opening the circuit.
func providerHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code < http.StatusInternalServerError
	}
	return false
}

// doRequest executes one GET through the rate limiter and the circuit breaker
// and returns the raw body of a 2xx response.
func doRequest(
	ctx context.Context,
	op string,
	cfg HTTPClientConfig,
	cb *gobreaker.CircuitBreaker,
	url string,
	params map[string]string,
) ([]byte, error) {
	if cfg.Client == nil {
		return nil, weather.NewFetchError(op, weather.ReasonNetwork, errNoHTTPClient)
	}

	if cfg.Limiter != nil {
		if err := cfg.Limiter.Wait(ctx); err != nil {
			return nil, weather.NewFetchError(op, weather.ReasonUnavailable, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := cfg.Client.R().
			SetContext(ctx).
			SetQueryParams(params).
			Get(url)
		if execErr != nil {
			return nil, weather.NewFetchError(op, weather.ReasonNetwork, execErr)
		}

		if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
			return nil, weather.NewFetchError(op, weather.ReasonUpstream,
				&statusError{code: resp.StatusCode(), body: truncate(resp.String(), 200)})
		}

		return resp.Body(), nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, weather.NewFetchError(op, weather.ReasonUnavailable, err)
		}
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, weather.NewFetchError(op, weather.ReasonMalformed, fmt.Errorf("unexpected result type from circuit breaker"))
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Package http implements the retrying transport shared by the CMR catalog
// client and the STAC item fetcher.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// RetryPolicy decides whether a failed attempt is reissued and how long to
// wait first.
type RetryPolicy interface {
	NextDelay(attempt int, resp *http.Response, err error) (time.Duration, bool)
}

// NoRetryPolicy disables retries. The catalog client uses it as its default:
// a failed page surfaces to the caller, which owns retry and backoff for
// cursor-based pagination.
type NoRetryPolicy struct{}

// NextDelay implements RetryPolicy.
func (NoRetryPolicy) NextDelay(int, *http.Response, error) (time.Duration, bool) {
	return 0, false
}

// transientPolicy retries network errors, throttling, and 5xx responses with
// capped exponential backoff. CMR throttle responses carry a delay-seconds
// Retry-After header, which takes precedence over the computed backoff.
type transientPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// DefaultRetryPolicy returns the policy used for STAC item fetches.
func DefaultRetryPolicy() RetryPolicy {
	return &transientPolicy{
		maxAttempts: 3,
		baseDelay:   500 * time.Millisecond,
		maxDelay:    10 * time.Second,
	}
}

// NextDelay implements RetryPolicy.
func (p *transientPolicy) NextDelay(attempt int, resp *http.Response, err error) (time.Duration, bool) {
	if attempt >= p.maxAttempts {
		return 0, false
	}
	if err != nil {
		return p.backoff(attempt), true
	}
	if resp == nil {
		return 0, false
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		if d, ok := retryAfter(resp); ok && d <= p.maxDelay {
			return d, true
		}
		return p.backoff(attempt), true
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return p.backoff(attempt), true
	}
	return 0, false
}

func (p *transientPolicy) backoff(attempt int) time.Duration {
	d := p.baseDelay << uint(attempt-1)
	if d > p.maxDelay {
		return p.maxDelay
	}
	return d
}

// retryAfter reads an integer delay-seconds Retry-After value. CMR does not
// use the HTTP-date form.
func retryAfter(resp *http.Response) (time.Duration, bool) {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}

// Do issues req through client, consulting policy after every attempt. The
// response handed back to the caller has an open body; bodies of attempts
// that are retried are drained and closed here.
func Do(ctx context.Context, client *http.Client, req *http.Request, policy RetryPolicy) (*http.Response, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if client == nil {
		return nil, errors.New("http client is required")
	}
	if policy == nil {
		policy = NoRetryPolicy{}
	}

	for attempt := 1; ; attempt++ {
		attemptReq, err := cloneRequest(ctx, req)
		if err != nil {
			return nil, err
		}

		resp, respErr := client.Do(attemptReq)
		delay, retry := policy.NextDelay(attempt, resp, respErr)
		if !retry {
			return resp, respErr
		}
		if resp != nil {
			io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

func cloneRequest(ctx context.Context, req *http.Request) (*http.Request, error) {
	clone := req.Clone(ctx)
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	return clone, nil
}

// HTTPError returns a descriptive error for non-successful responses.
func HTTPError(resp *http.Response) error {
	if resp == nil {
		return errors.New("nil response")
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("http error: %s: %s", resp.Status, string(data))
}

// DecodeJSON decodes a JSON payload from r into v. Unknown fields pass
// through untouched; CMR granule entries carry attributes the pipeline never
// models.
func DecodeJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

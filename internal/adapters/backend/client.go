package backend

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"smarthotel/internal/adapters/observability"
	"smarthotel/internal/domain"
)

// TokenSource supplies the bearer token for authenticated calls. The session
// service implements it; an empty token means unauthenticated.
type TokenSource interface {
	Token() string
}

// APIError is a server-reported business error. Message carries the backend's
// own wording so it can be shown verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client is the typed HTTP client for the Smart Hotel REST API.
type Client struct {
	base   string
	hc     *http.Client
	tokens TokenSource
	rl     *rate.Limiter
}

func New(base string, tokens TokenSource, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		hc:     &http.Client{Timeout: 20 * time.Second},
		tokens: tokens,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// do performs one API call with client-side rate limiting, retries on 429 and
// transient 5xx (honoring Retry-After), bearer auth, and JSON decode into out.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	start := time.Now()
	var lastErr error
	for i := 0; i < 4; i++ {
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, rd)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "smarthotel/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK, http.StatusCreated, http.StatusAccepted:
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			if out == nil {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				return nil
			}
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNoContent:
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil

		case http.StatusNotFound:
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized:
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			resp.Body.Close()
			return domain.ErrUnauthorized

		case http.StatusForbidden:
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			resp.Body.Close()
			return domain.ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = &APIError{Status: resp.StatusCode}
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			return lastErr

		default:
			// Business errors: surface the server's message verbatim when present.
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			observability.ObserveAPI(path, resp.StatusCode, time.Since(start))
			resp.Body.Close()
			return &APIError{Status: resp.StatusCode, Message: extractMessage(b)}
		}
	}

	return lastErr
}

// extractMessage pulls an error message out of the common response body shapes:
// {"message": ...}, {"error": ...}, and problem+json {"detail"/"title": ...}.
func extractMessage(b []byte) string {
	var m struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(b, &m); err == nil {
		for _, s := range []string{m.Message, m.Error, m.Detail, m.Title} {
			if s != "" {
				return s
			}
		}
	}
	return ""
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential delay (200ms, 400ms, 800ms...) with up to +50%
// crypto/rand jitter to avoid thundering herds.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}

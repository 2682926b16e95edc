package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config is the explicit replay configuration, passed in at construction.
// No process-wide singletons: two clients with different targets can run in
// the same process.
type Config struct {
	// APIURL is the full calls-ingestion endpoint.
	APIURL string

	// Delay is the politeness throttle between successive sends. It is
	// applied regardless of outcome and is not a correctness mechanism.
	Delay time.Duration

	// Timeout bounds each individual POST.
	Timeout time.Duration
}

func (c Config) withDefaults() Config {
	out := c
	if out.Delay <= 0 {
		out.Delay = 200 * time.Millisecond
	}
	if out.Timeout <= 0 {
		out.Timeout = 10 * time.Second
	}
	return out
}

// retryBackoff is the fixed wait before the single retry of a failed send.
const retryBackoff = 1 * time.Second

// Stats summarizes a replay run.
type Stats struct {
	Succeeded int
	Failed    int
}

// Client posts call payloads to the ingestion API.
type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("replay: api url is required")
	}
	if log == nil {
		log = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}, nil
}

// Post sends one payload, retrying exactly once after a fixed 1s backoff.
// A non-2xx response counts as a failure just like a transport error.
func (c *Client) Post(ctx context.Context, p CallPayload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return backoff.Permanent(err)
	}

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("http %d", resp.StatusCode)
		}
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(retryBackoff), 1)
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

// Run posts every payload in order. One permanently failed entry never
// aborts the batch; it is counted and the run continues.
func (c *Client) Run(ctx context.Context, payloads []CallPayload) Stats {
	stats := Stats{}
	total := len(payloads)

	for i, p := range payloads {
		entryLog := c.log.With("n", i+1, "total", total, "phone", p.Phone, "status", p.Status)

		if err := c.Post(ctx, p); err != nil {
			entryLog.Warn("entry failed after retry", "err", err)
			stats.Failed++
		} else {
			entryLog.Info("entry posted", "attempt", p.Attempt, "duration_s", p.Duration)
			stats.Succeeded++
		}

		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			return stats
		case <-time.After(c.cfg.Delay):
		}
	}
	return stats
}

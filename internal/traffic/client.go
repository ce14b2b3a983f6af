package traffic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"centre-portal/pkg/logger"
)

const (
	cacheKey     = "traffic:globaldata"
	maxBodyBytes = 4 << 20
)

// Cache shares successful snapshots between pollers.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Options struct {
	// BaseURL is the traffic service root; /globaldata is appended.
	BaseURL string
	// Timeout bounds one Fetch including retries.
	Timeout  time.Duration
	CacheTTL time.Duration
	Cache    Cache
	// RetryInterval is the first back-off delay.
	RetryInterval time.Duration
	HTTPClient    *http.Client
}

type Client struct {
	opts  Options
	http  *http.Client
	clock func() time.Time
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 250 * time.Millisecond
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{opts: opts, http: hc, clock: time.Now}
}

// Fetch returns the current snapshot. It never fails: upstream errors are
// reported through Snapshot.Error on a zeroed snapshot.
func (c *Client) Fetch(ctx context.Context) Snapshot {
	log := logger.From(ctx)

	if c.opts.Cache != nil && c.opts.CacheTTL > 0 {
		var cached Snapshot
		found, err := c.opts.Cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Warn("traffic cache read failed", "err", err)
		}
		if found {
			return cached
		}
	}

	snap, err := c.fetchUpstream(ctx)
	if err != nil {
		log.Warn("traffic fetch failed", "err", err)
		return Fallback(err, c.clock().UTC())
	}

	if c.opts.Cache != nil && c.opts.CacheTTL > 0 {
		if err := c.opts.Cache.Set(ctx, cacheKey, snap, c.opts.CacheTTL); err != nil {
			log.Warn("traffic cache write failed", "err", err)
		}
	}
	return snap
}

func (c *Client) fetchUpstream(ctx context.Context) (Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.opts.RetryInterval
	bo.MaxElapsedTime = c.opts.Timeout

	var (
		snap    Snapshot
		lastErr error
	)
	op := func() error {
		s, err := c.get(ctx)
		if err != nil {
			lastErr = err
			return err
		}
		snap = s
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			return Snapshot{}, lastErr
		}
		return Snapshot{}, err
	}
	return snap, nil
}

type statusError struct{ code int }

func (e statusError) Error() string { return fmt.Sprintf("traffic service returned status %d", e.code) }

// get performs one attempt. Only transport errors and 5xx are retried.
func (c *Client) get(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/globaldata", nil)
	if err != nil {
		return Snapshot{}, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Snapshot{}, backoff.Permanent(fmt.Errorf("timed out after %s", c.opts.Timeout))
		}
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return Snapshot{}, statusError{code: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Snapshot{}, backoff.Permanent(statusError{code: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Snapshot{}, err
	}
	snap, err := Parse(body)
	if err != nil {
		return Snapshot{}, backoff.Permanent(err)
	}
	snap.FetchedAt = c.clock().UTC()
	return snap, nil
}

// Stream sends a snapshot immediately and then every interval until ctx is
// done or send fails.
func (c *Client) Stream(ctx context.Context, interval time.Duration, send func(Snapshot) error) error {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if err := send(c.Fetch(ctx)); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

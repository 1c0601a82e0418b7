package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Options tunes retry, backoff, and cache behaviour.
type Options struct {
	// MaxAttempts bounds retries for read and write calls.
	MaxAttempts int
	// EnsureAttempts bounds retries for worksheet creation and header repair,
	// which tolerate one extra attempt.
	EnsureAttempts int
	BackoffBase    time.Duration
	BackoffCap     time.Duration
	// CacheTTL bounds how long row reads are served from memory.
	CacheTTL time.Duration
	// MetadataTTL bounds how long the worksheet title list is served from memory.
	MetadataTTL time.Duration
	// NewSheetRows and NewSheetCols size freshly created worksheets.
	NewSheetRows int64
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:    5,
		EnsureAttempts: 6,
		BackoffBase:    800 * time.Millisecond,
		BackoffCap:     6 * time.Second,
		CacheTTL:       60 * time.Second,
		MetadataTTL:    10 * time.Minute,
		NewSheetRows:   2000,
	}
}

// Client wraps an API with bounded retry on rate-limit errors and a
// short-lived read cache. Rate-limit failures are retried with exponential
// backoff; every other error propagates immediately. No durable local state
// is kept: cache entries expire on their own and are dropped on writes.
type Client struct {
	api    API
	opts   Options
	logger *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	tables   map[string]cacheEntry
	titles   []string
	titlesAt time.Time
}

type cacheEntry struct {
	rows [][]string
	at   time.Time
}

// ClientOption customizes a Client, mainly for tests.
type ClientOption func(*Client)

// WithNowFunc overrides the clock used for cache expiry.
func WithNowFunc(now func() time.Time) ClientOption {
	return func(c *Client) { c.now = now }
}

// WithSleepFunc overrides the backoff sleep.
func WithSleepFunc(sleep func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) { c.sleep = sleep }
}

// NewClient creates a client over api.
func NewClient(api API, opts Options, logger *slog.Logger, clientOpts ...ClientOption) *Client {
	if opts.MaxAttempts <= 0 {
		opts = DefaultOptions()
	}
	c := &Client{
		api:    api,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		sleep:  sleepContext,
		tables: make(map[string]cacheEntry),
	}
	for _, o := range clientOpts {
		o(c)
	}
	return c
}

// ReadAll returns every row of a table, serving from cache within the TTL.
func (c *Client) ReadAll(ctx context.Context, table string) ([][]string, error) {
	c.mu.Lock()
	if entry, ok := c.tables[table]; ok && c.now().Sub(entry.at) < c.opts.CacheTTL {
		c.mu.Unlock()
		return entry.rows, nil
	}
	c.mu.Unlock()

	var rows [][]string
	err := c.withRetry(ctx, c.opts.MaxAttempts, "values.get", func() error {
		var err error
		rows, err = c.api.Values(ctx, table)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.tables[table] = cacheEntry{rows: rows, at: c.now()}
	c.mu.Unlock()
	return rows, nil
}

// BatchRead returns the rows of several tables keyed by table name, fetching
// all cache misses in a single batch call.
func (c *Client) BatchRead(ctx context.Context, tables []string) (map[string][][]string, error) {
	out := make(map[string][][]string, len(tables))
	var missing []string

	c.mu.Lock()
	for _, table := range tables {
		if entry, ok := c.tables[table]; ok && c.now().Sub(entry.at) < c.opts.CacheTTL {
			out[table] = entry.rows
		} else {
			missing = append(missing, table)
		}
	}
	c.mu.Unlock()

	if len(missing) == 0 {
		return out, nil
	}

	var fetched [][][]string
	err := c.withRetry(ctx, c.opts.MaxAttempts, "values.batchGet", func() error {
		var err error
		fetched, err = c.api.BatchValues(ctx, missing)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for i, table := range missing {
		var rows [][]string
		if i < len(fetched) {
			rows = fetched[i]
		}
		out[table] = rows
		c.tables[table] = cacheEntry{rows: rows, at: c.now()}
	}
	c.mu.Unlock()
	return out, nil
}

// AppendRow appends one row to a table and drops its cache entry.
func (c *Client) AppendRow(ctx context.Context, table string, row []string) error {
	err := c.withRetry(ctx, c.opts.MaxAttempts, "values.append", func() error {
		return c.api.Append(ctx, table, row)
	})
	if err != nil {
		return err
	}
	c.Invalidate(table)
	return nil
}

// UpdateRange overwrites the cells at addr (A1 notation within the table)
// and drops the table's cache entry.
func (c *Client) UpdateRange(ctx context.Context, table, addr string, values [][]string) error {
	err := c.withRetry(ctx, c.opts.MaxAttempts, "values.update", func() error {
		return c.api.Update(ctx, table, addr, values)
	})
	if err != nil {
		return err
	}
	c.Invalidate(table)
	return nil
}

// SheetTitles lists worksheet titles, served from the metadata cache.
func (c *Client) SheetTitles(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	if c.titles != nil && c.now().Sub(c.titlesAt) < c.opts.MetadataTTL {
		titles := c.titles
		c.mu.Unlock()
		return titles, nil
	}
	c.mu.Unlock()

	var titles []string
	err := c.withRetry(ctx, c.opts.MaxAttempts, "spreadsheets.get", func() error {
		var err error
		titles, err = c.api.SheetTitles(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.titles = titles
	c.titlesAt = c.now()
	c.mu.Unlock()
	return titles, nil
}

// EnsureTable guarantees a worksheet exists with exactly the expected header
// row. A missing worksheet is created; a header that differs from expected is
// overwritten in place. The header is authoritative: callers must treat this
// as destructive on sheets with a foreign layout.
func (c *Client) EnsureTable(ctx context.Context, table string, columns []string) error {
	titles, err := c.SheetTitles(ctx)
	if err != nil {
		return fmt.Errorf("listing sheets: %w", err)
	}

	if !containsString(titles, table) {
		err := c.withRetry(ctx, c.opts.EnsureAttempts, "sheets.add", func() error {
			return c.api.AddSheet(ctx, table, c.opts.NewSheetRows, int64(len(columns)))
		})
		if err != nil {
			return fmt.Errorf("creating sheet %q: %w", table, err)
		}
		c.invalidateTitles()
		if err := c.AppendRow(ctx, table, columns); err != nil {
			return fmt.Errorf("writing header for %q: %w", table, err)
		}
		return nil
	}

	rows, err := c.ReadAll(ctx, table)
	if err != nil {
		return fmt.Errorf("reading header of %q: %w", table, err)
	}
	if len(rows) == 0 {
		if err := c.AppendRow(ctx, table, columns); err != nil {
			return fmt.Errorf("writing header for %q: %w", table, err)
		}
		return nil
	}
	if equalStrings(rows[0], columns) {
		return nil
	}

	addr := fmt.Sprintf("A1:%s1", ColumnLetter(len(columns)))
	if err := c.UpdateRange(ctx, table, addr, [][]string{columns}); err != nil {
		return fmt.Errorf("repairing header of %q: %w", table, err)
	}
	return nil
}

// Invalidate drops the cached rows of one table.
func (c *Client) Invalidate(table string) {
	c.mu.Lock()
	delete(c.tables, table)
	c.mu.Unlock()
}

// InvalidateAll drops every cached read.
func (c *Client) InvalidateAll() {
	c.mu.Lock()
	c.tables = make(map[string]cacheEntry)
	c.titles = nil
	c.mu.Unlock()
}

func (c *Client) invalidateTitles() {
	c.mu.Lock()
	c.titles = nil
	c.mu.Unlock()
}

func (c *Client) withRetry(ctx context.Context, attempts int, op string, fn func() error) error {
	var last error
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return err
		}
		last = err
		delay := c.backoffDelay(i)
		c.logger.Warn("rate limited by sheets API, backing off",
			"op", op, "attempt", i+1, "delay", delay)
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrRateLimited, last)
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.opts.BackoffBase << uint(attempt)
	if delay > c.opts.BackoffCap || delay <= 0 {
		delay = c.opts.BackoffCap
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ColumnLetter converts a 1-based column number to its A1 letter form.
func ColumnLetter(n int) string {
	var s []byte
	for n > 0 {
		n--
		s = append([]byte{byte('A' + n%26)}, s...)
		n /= 26
	}
	return string(s)
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

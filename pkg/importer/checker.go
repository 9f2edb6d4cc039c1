package importer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// SourceStore is the part of SourceDB the checker needs.
type SourceStore interface {
	ListSources() ([]Source, error)
	UpdateCheck(adapterID string, status int, checkErr string) error
}

// CheckResult summarizes one pass over the sources.
type CheckResult struct {
	OK     int
	Failed int
}

// Checker performs periodic HEAD requests against all registered import sources
// and logs their availability.
type Checker struct {
	sources  SourceStore
	logger   *slog.Logger
	interval time.Duration
	client   *http.Client
}

// NewChecker creates a Checker that will verify source URLs every interval.
func NewChecker(sources SourceStore, logger *slog.Logger, interval time.Duration) *Checker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		sources:  sources,
		logger:   logger,
		interval: interval,
		client: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Start runs an immediate check then repeats every interval until ctx is
// cancelled. Failed passes are logged; the next tick retries.
func (c *Checker) Start(ctx context.Context) {
	run := func() {
		if _, err := c.CheckAll(ctx); err != nil && ctx.Err() == nil {
			c.logger.Error("source check failed", "error", err)
		}
	}
	run()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// CheckAll performs a HEAD request on every source URL and persists the result.
func (c *Checker) CheckAll(ctx context.Context) (CheckResult, error) {
	var res CheckResult
	sources, err := c.sources.ListSources()
	if err != nil {
		return res, fmt.Errorf("source check: %w", err)
	}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		status, checkErr := c.checkOne(ctx, src.SourceURL)
		errMsg := ""
		if checkErr != nil {
			errMsg = checkErr.Error()
		}

		if err := c.sources.UpdateCheck(src.AdapterID, status, errMsg); err != nil {
			return res, err
		}

		if status >= 200 && status < 400 {
			res.OK++
		} else {
			res.Failed++
			c.logger.Warn("source unreachable",
				"adapter", src.AdapterID,
				"table", src.TableID,
				"url", src.SourceURL,
				"status", status,
				"error", errMsg,
			)
		}
	}

	if len(sources) > 0 {
		c.logger.Info("source check complete", "total", res.OK+res.Failed, "ok", res.OK, "failed", res.Failed)
	}
	return res, nil
}

// checkOne performs a single HEAD request and returns the HTTP status code.
// On network error, status is 0.
func (c *Checker) checkOne(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HEAD %s: %w", url, err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

package tpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yeager/tp-lint/internal/model"
)

// Download fetches one PO file URL into dir and returns the result.
// The destination filename is the URL's last path segment.
func (c *Client) Download(ctx context.Context, url, dir string) (model.DownloadResult, error) {
	start := time.Now()
	result := model.DownloadResult{URL: url}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return result, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return result, fmt.Errorf("%w: %s (%s)", ErrUnexpectedStatus, resp.Status, url)
	}

	path := filepath.Join(dir, model.FileNameFromURL(url))
	f, err := os.Create(path) //nolint:gosec // Destination dir is caller-controlled
	if err != nil {
		return result, fmt.Errorf("create %s: %w", path, err)
	}

	size, err := io.Copy(f, io.LimitReader(resp.Body, c.maxBodySize))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return result, fmt.Errorf("write %s: %w", path, err)
	}

	result.Path = path
	result.Size = size
	result.Elapsed = time.Since(start)
	return result, nil
}

// DownloadAll fetches every URL into dir with at most jobs concurrent
// downloads. It returns results in completion order. The first failure
// cancels the remaining downloads.
//
// Design decision: errgroup with SetLimit instead of a hand-rolled worker
// pool: the limit doubles as a politeness cap on a volunteer-run server,
// and context cancellation propagates to in-flight requests for free.
func (c *Client) DownloadAll(ctx context.Context, urls []string, dir string, jobs int) ([]model.DownloadResult, error) {
	if jobs < 1 {
		jobs = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	var mu sync.Mutex
	results := make([]model.DownloadResult, 0, len(urls))

	for _, url := range urls {
		g.Go(func() error {
			result, err := c.Download(ctx, url, dir)
			if err != nil {
				return err
			}
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

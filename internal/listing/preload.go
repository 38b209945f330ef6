package listing

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"
)

// Preloader warms product thumbnails before a page is revealed, so the view
// does not flicker with images popping in one by one. Strictly best effort:
// every request is waited for, none may block the reveal beyond its own
// completion, and a failed image never aborts the rest.
type Preloader struct {
	http  *http.Client
	limit int
	log   logrus.FieldLogger
}

func NewPreloader(timeout time.Duration, limit int, log logrus.FieldLogger) *Preloader {
	if limit < 1 {
		limit = 4
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Preloader{
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limit: limit,
		log:   log,
	}
}

// Warm fetches all URLs with bounded concurrency and waits for every request
// to settle. Returns the number of failed loads, which callers only use for
// logging.
func (p *Preloader) Warm(ctx context.Context, urls []string) int {
	if len(urls) == 0 {
		return 0
	}

	failures := make(chan string, len(urls))
	var g errgroup.Group
	g.SetLimit(p.limit)

	for _, u := range urls {
		g.Go(func() error {
			if err := p.fetch(ctx, u); err != nil {
				failures <- u
			}
			// Failures are reported, never propagated: one broken image
			// must not cancel the remaining loads.
			return nil
		})
	}
	g.Wait()
	close(failures)

	failed := 0
	for u := range failures {
		p.log.WithField("url", u).Debug("image preload failed")
		failed++
	}
	return failed
}

func (p *Preloader) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("image responded with status %d", resp.StatusCode)
	}
	return nil
}

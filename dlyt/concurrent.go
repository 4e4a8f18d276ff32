package dlyt

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// AccountSummary bundles the account views fetched together
type AccountSummary struct {
	Profile  *Profile   `json:"profile,omitempty"`
	Packages []Package  `json:"packages,omitempty"`
	Usage    []UsageDay `json:"usage,omitempty"`
	// Errors holds the message of every call that failed
	Errors []string `json:"errors,omitempty"`
}

// Summary fetches profile, packages and usage concurrently. A failing call
// does not cancel the others; its message is recorded in Errors. The
// returned error is non-nil only when every call failed.
func (c *Client) Summary(ctx context.Context, r UsageRange) (*AccountSummary, error) {
	var (
		mu      sync.Mutex
		summary AccountSummary
		lastErr error
	)

	record := func(err error) error {
		mu.Lock()
		defer mu.Unlock()
		summary.Errors = append(summary.Errors, err.Error())
		lastErr = err
		return err
	}

	// a plain Group, so one failure does not cancel the other calls
	var g errgroup.Group

	g.Go(func() error {
		profile, err := c.Profile(ctx)
		if err != nil {
			return record(err)
		}
		mu.Lock()
		summary.Profile = profile
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		packages, err := c.Packages(ctx)
		if err != nil {
			return record(err)
		}
		mu.Lock()
		summary.Packages = packages
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		days, err := c.Usage(ctx, r)
		if err != nil {
			return record(err)
		}
		mu.Lock()
		summary.Usage = days
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil && len(summary.Errors) == 3 {
		// the last failure is the one left on screen
		return nil, lastErr
	}

	c.logger.Debug().
		Bool("profile", summary.Profile != nil).
		Int("packages", len(summary.Packages)).
		Int("usage_days", len(summary.Usage)).
		Int("failed", len(summary.Errors)).
		Msg("Fetched account summary")

	return &summary, nil
}

package federated

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/marketfeed/internal/common"
	"github.com/sethvargo/go-retry"
)

var errNotReady = errors.New("provider not ready")

// DefaultInterval is used when a Policy leaves Interval unset.
const DefaultInterval = 500 * time.Millisecond

// Provider is an external sign-in widget. Ready returns nil once the
// widget can hand out a credential.
type Provider interface {
	Ready(ctx context.Context) error
	Credential(ctx context.Context) (string, error)
}

// Policy bounds the wait for a provider. Attempts counts every check,
// including the first.
type Policy struct {
	Attempts uint64
	Interval time.Duration
}

// Await polls p until it is ready, at most pol.Attempts times with
// pol.Interval between checks. A non-positive Interval means
// DefaultInterval. It fails with common.ErrProviderUnavailable
// when the budget runs out, or with the context error on cancellation.
func Await(ctx context.Context, p Provider, pol Policy) error {
	if pol.Attempts == 0 {
		pol.Attempts = 1
	}
	if pol.Interval <= 0 {
		pol.Interval = DefaultInterval
	}
	backoff := retry.WithMaxRetries(pol.Attempts-1, retry.NewConstant(pol.Interval))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := p.Ready(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", common.ErrProviderUnavailable, err)
}

// FileProvider picks up a token that the widget drops into a file.
type FileProvider struct {
	Path string
}

func (f FileProvider) Ready(context.Context) error {
	st, err := os.Stat(f.Path)
	if err != nil {
		return err
	}
	if st.Size() == 0 {
		return errNotReady
	}
	return nil
}

func (f FileProvider) Credential(context.Context) (string, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

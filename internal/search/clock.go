package search

import (
	"context"
	"math"
	"time"
)

// TimeLeft reports the remaining budget. Searchers call it once per node.
type TimeLeft func() time.Duration

// Unlimited never runs out.
func Unlimited() time.Duration { return time.Duration(math.MaxInt64) }

// Budget counts down d from now.
func Budget(d time.Duration) TimeLeft {
	return Deadline(time.Now().Add(d))
}

// Deadline counts down to t.
func Deadline(t time.Time) TimeLeft {
	return func() time.Duration { return time.Until(t) }
}

// FromContext counts down to ctx's deadline and reports zero once ctx is
// done. A context without a deadline is unlimited until cancelled.
func FromContext(ctx context.Context) TimeLeft {
	dl, hasDeadline := ctx.Deadline()
	return func() time.Duration {
		if ctx.Err() != nil {
			return 0
		}
		if !hasDeadline {
			return Unlimited()
		}
		return time.Until(dl)
	}
}

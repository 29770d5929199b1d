package volume

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/volmeta/volmeta/internal/logger"
	"github.com/volmeta/volmeta/internal/ratelimiter"
)

// MountCandidate is one raw mount-table row awaiting its accessibility
// probe.
type MountCandidate struct {
	MountPoint string
	FSType     string
	Source     string
}

// probeFunc performs the platform accessibility check for one candidate.
// It runs on a worker goroutine and may block; the scheduler abandons it on
// timeout.
type probeFunc func(c MountCandidate) (MountStatus, string)

// probeOutcome carries a finished probe out of its worker goroutine. The
// channel it travels on is buffered so an abandoned worker can still
// deliver (into the void) and exit.
type probeOutcome struct {
	status MountStatus
	detail string
}

// ProbeScheduler fans out per-mount accessibility probes with bounded
// concurrency and assembles an order-preserving result list.
//
// Each probe is independently time-boxed: a probe that exceeds its budget
// is abandoned, its entry is marked disconnected, and the scheduler moves
// on. The underlying syscall may complete later on its abandoned goroutine;
// the result is discarded. One unresponsive network mount therefore cannot
// stall or fail the enumeration of the others.
//
// Thread safety:
// A scheduler is created per enumeration call and not shared.
type ProbeScheduler struct {
	timeout       time.Duration
	maxConcurrent int
	limiter       *ratelimiter.RateLimiter
	probe         probeFunc
}

// newProbeScheduler builds a scheduler from normalized options. probe
// defaults to the platform accessibility check.
func newProbeScheduler(opts Options, probe probeFunc) *ProbeScheduler {
	if probe == nil {
		probe = probeMountCandidate
	}
	return &ProbeScheduler{
		timeout:       opts.Timeout,
		maxConcurrent: opts.MaxConcurrent,
		limiter:       ratelimiter.New(opts.RateLimit, 0),
		probe:         probe,
	}
}

// ProbeAll probes every candidate and returns one entry per candidate, in
// input order, regardless of completion order.
//
// ProbeAll never fails: every outcome, including timeouts and cancellation,
// is expressed in the per-entry status. If ctx is cancelled before a
// candidate is dispatched, its entry is marked unknown with the
// cancellation recorded in ErrorDetail.
func (s *ProbeScheduler) ProbeAll(ctx context.Context, candidates []MountCandidate) []MountPointEntry {
	results := make([]MountPointEntry, len(candidates))

	g := &errgroup.Group{}
	g.SetLimit(s.maxConcurrent)

	for i, c := range candidates {
		results[i] = MountPointEntry{
			MountPoint:     c.MountPoint,
			FileSystemType: c.FSType,
			Status:         MountUnknown,
			IsSystemVolume: isSystemMount(c),
		}

		if err := s.limiter.Wait(ctx); err != nil {
			results[i].ErrorDetail = fmt.Sprintf("probe not dispatched: %v", err)
			continue
		}

		i, c := i, c
		g.Go(func() error {
			status, detail := s.probeOne(ctx, c)
			results[i].Status = status
			results[i].ErrorDetail = detail
			return nil
		})
	}

	g.Wait()

	return results
}

// probeOne runs a single probe on its own goroutine and waits for it with
// the per-probe timeout. Timeout yields disconnected, not error: an
// unresponsive mount is an expected state for network filesystems.
func (s *ProbeScheduler) probeOne(ctx context.Context, c MountCandidate) (MountStatus, string) {
	start := time.Now()
	outcome := make(chan probeOutcome, 1)

	go func() {
		status, detail := s.probe(c)
		outcome <- probeOutcome{status: status, detail: detail}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	var status MountStatus
	var detail string

	select {
	case r := <-outcome:
		logger.Debug("probe %q -> %s in %v", c.MountPoint, r.status, time.Since(start))
		status, detail = r.status, r.detail
	case <-timer.C:
		logger.Debug("probe %q abandoned after %v", c.MountPoint, s.timeout)
		status = MountDisconnected
		detail = fmt.Sprintf("probe timed out after %v: %v", s.timeout, ErrTimeout)
	case <-ctx.Done():
		status = MountUnknown
		detail = fmt.Sprintf("probe cancelled: %v", ctx.Err())
	}

	currentMetrics().RecordProbe(string(status), time.Since(start))
	return status, detail
}
